// Package todolist holds the ordered to-do list, the single edit session and
// the mutate-then-persist rule that keeps the storage slot in sync.
//
// Persistence is best effort. Reading the slot at startup and writing it after
// Add, Delete and CommitEdit never fail an operation: a bad slot loads as an
// empty list and a failed write leaves the in-memory list authoritative.
package todolist

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
)

// ErrNotFound is returned by lookups for an id not in the list.
var ErrNotFound = errors.New("todo not found")

// BlurPolicy decides what losing focus on the edit field does.
type BlurPolicy string

const (
	BlurCommit BlurPolicy = "commit"
	BlurCancel BlurPolicy = "cancel"
)

// ParseBlurPolicy accepts "commit" or "cancel".
func ParseBlurPolicy(s string) (BlurPolicy, error) {
	switch BlurPolicy(s) {
	case BlurCommit, BlurCancel:
		return BlurPolicy(s), nil
	}
	return "", fmt.Errorf("unknown blur policy %q (want commit or cancel)", s)
}

// IDFunc produces a fresh record id.
type IDFunc func() string

// NewID returns a random (version 4) UUID. Random rather than time-ordered
// so that short prefixes stay distinct for Resolve.
func NewID() string {
	return uuid.NewString()
}

// Option configures a Store.
type Option func(*Store)

// WithLogger routes swallowed persistence errors to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIDFunc overrides id generation.
func WithIDFunc(f IDFunc) Option {
	return func(s *Store) { s.newID = f }
}

// WithBlurPolicy sets what Blur does. Default is BlurCommit.
func WithBlurPolicy(p BlurPolicy) Option {
	return func(s *Store) { s.blur = p }
}

// Store is the list plus its edit session. Not safe for concurrent use;
// callers drive it from a single event loop.
type Store struct {
	slot  jsonstore.Slot
	items []model.Todo
	edit  *model.EditSession
	// issued holds every id loaded or handed out, deleted ones included.
	issued map[string]struct{}

	newID   IDFunc
	blur    BlurPolicy
	log     *log.Logger
	loadErr error
	lastErr error
}

// New hydrates a store from slot. It never fails: anything unreadable
// becomes an empty list.
func New(slot jsonstore.Slot, opts ...Option) *Store {
	s := &Store{
		slot:  slot,
		newID: NewID,
		blur:  BlurCommit,
		log:   log.New(io.Discard),
	}
	for _, o := range opts {
		o(s)
	}

	s.issued = make(map[string]struct{})
	items, err := jsonstore.Load(slot)
	switch {
	case err == nil:
		s.items = items
		for _, t := range items {
			s.issued[t.ID] = struct{}{}
		}
	case errors.Is(err, jsonstore.ErrEmpty):
		s.log.Debug("slot empty, starting with no items")
		s.items = []model.Todo{}
	default:
		s.log.Warn("discarding unreadable slot", "err", err)
		s.loadErr = err
		s.items = []model.Todo{}
	}
	return s
}

// Items returns a copy of the list in order.
func (s *Store) Items() []model.Todo {
	out := make([]model.Todo, len(s.items))
	copy(out, s.items)
	return out
}

// Len is the number of records.
func (s *Store) Len() int { return len(s.items) }

// Get returns the record with id.
func (s *Store) Get(id string) (model.Todo, error) {
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], nil
	}
	return model.Todo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Editing returns the active edit session, if any.
func (s *Store) Editing() (model.EditSession, bool) {
	if s.edit == nil {
		return model.EditSession{}, false
	}
	return *s.edit, true
}

// BlurPolicy reports the configured blur behavior.
func (s *Store) BlurPolicy() BlurPolicy { return s.blur }

// LoadError is why the slot was discarded at startup, nil if it loaded or
// was empty.
func (s *Store) LoadError() error { return s.loadErr }

// LastPersistError is the most recent swallowed write failure, nil after a
// successful write.
func (s *Store) LastPersistError() error { return s.lastErr }

// Add appends a record with the trimmed text. Blank text is ignored and
// reported with ok=false.
func (s *Store) Add(raw string) (todo model.Todo, ok bool) {
	text, ok := model.NormalizeText(raw)
	if !ok {
		return model.Todo{}, false
	}
	todo = model.Todo{ID: s.freshID(), Text: text}
	s.items = appendTodo(s.items, todo)
	s.persist()
	return todo, true
}

// Delete removes the record with id if present. Deleting the record under
// edit ends the edit session.
func (s *Store) Delete(id string) {
	s.items = removeTodo(s.items, id)
	if s.edit != nil && s.edit.TargetID == id {
		s.edit = nil
	}
	s.persist()
}

// StartEdit opens an edit session on id, seeded with its current text.
// Any previous session is dropped unsaved. Unknown ids are ignored.
func (s *Store) StartEdit(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.edit = &model.EditSession{TargetID: id, Buffer: s.items[i].Text}
}

// UpdateEditBuffer replaces the draft text. No effect without a session.
func (s *Store) UpdateEditBuffer(text string) {
	if s.edit == nil {
		return
	}
	s.edit.Buffer = text
}

// CommitEdit writes the trimmed draft into the target record and ends the
// session. A blank draft is discarded like CancelEdit.
func (s *Store) CommitEdit() {
	sess := s.edit
	s.edit = nil
	if sess == nil {
		return
	}
	text, ok := model.NormalizeText(sess.Buffer)
	if !ok {
		return
	}
	next, found := replaceText(s.items, sess.TargetID, text)
	if !found {
		return
	}
	s.items = next
	s.persist()
}

// CancelEdit ends the session without touching the list.
func (s *Store) CancelEdit() {
	s.edit = nil
}

// Blur applies the blur policy to the active session.
func (s *Store) Blur() {
	if s.blur == BlurCancel {
		s.CancelEdit()
		return
	}
	s.CommitEdit()
}

func (s *Store) persist() {
	if err := jsonstore.Save(s.slot, s.items); err != nil {
		s.lastErr = err
		s.log.Warn("persist failed, keeping in-memory list", "err", err, "items", len(s.items))
		return
	}
	s.lastErr = nil
}

// maxIDAttempts bounds calls to a custom IDFunc before freshID falls back
// to NewID.
const maxIDAttempts = 8

// freshID returns an id that was never issued or loaded by this store.
// After maxIDAttempts unusable ids (empty or already issued) it switches to
// random UUIDs, so a broken IDFunc cannot hang Add.
func (s *Store) freshID() string {
	gen := s.newID
	for attempt := 0; ; attempt++ {
		if attempt == maxIDAttempts {
			s.log.Warn("id generator keeps repeating, falling back to random UUIDs")
			gen = NewID
		}
		id := gen()
		if _, used := s.issued[id]; id != "" && !used {
			s.issued[id] = struct{}{}
			return id
		}
		s.log.Debug("id collision, regenerating", "id", id)
	}
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}
