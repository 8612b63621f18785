// Package config loads tada settings from defaults, a TOML file, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/todolist"
)

const (
	appName        = "tada"
	configFileName = "tada.toml"

	DefaultSlot     = "todos"
	DefaultTheme    = "classic"
	DefaultLogLevel = "warn"
)

// Config is the resolved runtime configuration.
type Config struct {
	DataDir   string `toml:"data_dir"`
	Slot      string `toml:"slot"`
	Blur      string `toml:"blur"`
	Theme     string `toml:"theme"`
	LogLevel  string `toml:"log_level"`
	Ephemeral bool   `toml:"ephemeral"`

	// File is the config file that was read, empty if none.
	File string `toml:"-"`
}

// BlurPolicy returns the parsed blur setting.
func (c *Config) BlurPolicy() todolist.BlurPolicy {
	p, err := todolist.ParseBlurPolicy(c.Blur)
	if err != nil {
		return todolist.BlurCommit
	}
	return p
}

// Level returns the parsed log level.
func (c *Config) Level() log.Level {
	l, _ := logging.ParseLevel(c.LogLevel)
	return l
}

// Load resolves configuration:
// 1. Defaults
// 2. Config file ($TADA_CONFIG, ./tada.toml, or <user config dir>/tada/tada.toml)
// 3. Environment variables (TADA_*)
// 4. Flags on fs, parsed from args
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if path := findConfigFile(); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		cfg.File = path
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	registerFlags(cfg, fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize lowercases enum settings whichever layer they came from.
func (c *Config) normalize() {
	c.Blur = strings.ToLower(strings.TrimSpace(c.Blur))
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate rejects unknown enum values and empty required fields.
func (c *Config) Validate() error {
	var errs []error
	if _, err := todolist.ParseBlurPolicy(c.Blur); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		errs = append(errs, fmt.Errorf("unknown theme %q (want classic, neon or mono)", c.Theme))
	}
	if strings.TrimSpace(c.Slot) == "" {
		errs = append(errs, errors.New("slot name is empty"))
	} else if strings.ContainsAny(c.Slot, `/\`) {
		errs = append(errs, fmt.Errorf("slot name %q must not contain path separators", c.Slot))
	}
	if !c.Ephemeral && strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, errors.New("data dir is empty"))
	}
	return errors.Join(errs...)
}

func setDefaults(cfg *Config) {
	cfg.DataDir = defaultDataDir()
	cfg.Slot = DefaultSlot
	cfg.Blur = string(todolist.BlurCommit)
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "."+appName)
	}
	return "." + appName
}

func findConfigFile() string {
	if p := strings.TrimSpace(os.Getenv("TADA_CONFIG")); p != "" {
		return p
	}
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, appName, configFileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TADA_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TADA_SLOT"); v != "" {
		cfg.Slot = v
	}
	if v := os.Getenv("TADA_BLUR"); v != "" {
		cfg.Blur = v
	}
	if v := os.Getenv("TADA_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TADA_EPHEMERAL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TADA_EPHEMERAL: %w", err)
		}
		cfg.Ephemeral = b
	}
	return nil
}

// registerFlags binds flags to cfg with the already-resolved values as
// defaults, so only flags actually given override file and env.
func registerFlags(cfg *Config, fs *flag.FlagSet) {
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding the todo slot")
	fs.StringVar(&cfg.Slot, "slot", cfg.Slot, "slot name (file <data-dir>/<slot>.json)")
	fs.StringVar(&cfg.Blur, "blur", cfg.Blur, "what leaving the edit field does: commit or cancel")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "color theme: classic, neon or mono")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "keep the list in memory only")
}
