// Package store owns the canonical todo list and mirrors it to a persistent slot.
package store

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/model"
)

// DefaultKey names the slot the list lives in unless overridden.
const DefaultKey = "tada:todos:v1"

// Store holds an ordered, newest-first list of todos.
//
// Every operation replaces the list in one step and, when the list changed,
// writes it back to the slot. Operations never fail: bad input is a no-op and
// storage errors are logged and dropped. A Store is not safe for concurrent use.
type Store struct {
	slot  Slot
	key   string
	log   *log.Logger
	now   func() time.Time
	newID func() string

	todos []model.Todo
}

// Option customizes a Store at Open.
type Option func(*Store)

// WithKey sets the slot key. Empty keys are ignored.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now for createdAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc replaces the id generator. Ids that collide with held ones are retried.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Open creates a Store and loads the list from slot once.
// An absent, unreadable or corrupt slot yields an empty list.
func Open(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:  slot,
		key:   DefaultKey,
		log:   logging.Discard(),
		now:   time.Now,
		newID: uuidV7,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.todos = s.load()
	return s
}

func (s *Store) load() []model.Todo {
	b, err := s.slot.Get(s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("read slot failed, starting empty", "key", s.key, "err", err)
		}
		return []model.Todo{}
	}
	todos, skipped, err := Decode(b)
	if err != nil {
		s.log.Warn("slot is corrupt, starting empty", "key", s.key, "err", err)
		return []model.Todo{}
	}
	for _, e := range skipped {
		s.log.Warn("dropped invalid record", "key", s.key, "err", e)
	}
	s.log.Debug("loaded todos", "key", s.key, "count", len(todos))
	return todos
}

func (s *Store) persist() {
	b, err := Encode(s.todos)
	if err != nil {
		s.log.Warn("encode todos failed", "err", err)
		return
	}
	if err := s.slot.Set(s.key, b); err != nil {
		s.log.Warn("write slot failed", "key", s.key, "err", err)
		return
	}
	s.log.Debug("saved todos", "key", s.key, "count", len(s.todos))
}

// commit swaps in next and writes it back.
func (s *Store) commit(next []model.Todo) {
	s.todos = next
	s.persist()
}

// SetLogger replaces the logger after Open. A nil logger discards output.
func (s *Store) SetLogger(l *log.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	s.log = l
}

// Key reports the slot key in use.
func (s *Store) Key() string { return s.key }

// Todos returns a copy of the full list, newest first.
func (s *Store) Todos() []model.Todo {
	return append([]model.Todo(nil), s.todos...)
}

func (s *Store) Len() int { return len(s.todos) }

// Get looks up a todo by id.
func (s *Store) Get(id string) (model.Todo, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.todos[i], true
	}
	return model.Todo{}, false
}

// Add prepends a new active todo. A title that trims to nothing is ignored.
// It returns the created todo and whether one was created.
func (s *Store) Add(title string) (model.Todo, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Todo{}, false
	}
	t := model.Todo{
		ID:        s.uniqueID(),
		Title:     title,
		CreatedAt: time.UnixMilli(s.now().UnixMilli()),
	}
	next := make([]model.Todo, 0, len(s.todos)+1)
	next = append(next, t)
	next = append(next, s.todos...)
	s.commit(next)
	return t, true
}

// Toggle flips the completed flag of the todo with id.
func (s *Store) Toggle(id string) {
	s.replace(id, func(t model.Todo) model.Todo {
		t.Completed = !t.Completed
		return t
	})
}

// Remove deletes the todo with id.
func (s *Store) Remove(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	next := make([]model.Todo, 0, len(s.todos)-1)
	next = append(next, s.todos[:i]...)
	next = append(next, s.todos[i+1:]...)
	s.commit(next)
}

// Edit retitles the todo with id. A title that trims to nothing removes it.
func (s *Store) Edit(id, title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		s.Remove(id)
		return
	}
	s.replace(id, func(t model.Todo) model.Todo {
		t.Title = title
		return t
	})
}

// ClearCompleted removes every completed todo, keeping the rest in order.
func (s *Store) ClearCompleted() {
	next := make([]model.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		if !t.Completed {
			next = append(next, t)
		}
	}
	if len(next) == len(s.todos) {
		return
	}
	s.commit(next)
}

// Filtered returns the todos matching f, in list order.
func (s *Store) Filtered(f model.Filter) []model.Todo {
	out := make([]model.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Remaining counts todos that are not completed.
func (s *Store) Remaining() int {
	n := 0
	for _, t := range s.todos {
		if !t.Completed {
			n++
		}
	}
	return n
}

func (s *Store) replace(id string, fn func(model.Todo) model.Todo) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	next := append([]model.Todo(nil), s.todos...)
	next[i] = fn(next[i])
	s.commit(next)
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

// uuidV7 ids are time-ordered with a random tail.
func uuidV7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
