package theme

import (
	"sync"

	"folio/internal/errors"
	"folio/internal/kv"
	"folio/internal/log"
)

// StorageKey is the key-value key holding the selected theme.
const StorageKey = "theme"

// Store holds the selected theme and persists changes.
type Store struct {
	mu       sync.Mutex
	kv       kv.Store
	fallback Theme
	current  Theme
	subs     map[int]func(Theme)
	nextID   int
}

// NewStore creates a store on the default theme. kv may be nil, in which
// case selections are not persisted.
func NewStore(store kv.Store) *Store {
	return &Store{
		kv:       store,
		fallback: mustLookup(Default),
		current:  mustLookup(Default),
		subs:     map[int]func(Theme){},
	}
}

// SetFallback changes the theme Init uses when nothing valid is stored.
func (s *Store) SetFallback(name string) error {
	t, ok := Lookup(name)
	if !ok {
		return errors.NewConfigError("unknown theme", name, errors.UnknownTheme, nil)
	}
	s.mu.Lock()
	s.fallback = t
	s.mu.Unlock()
	return nil
}

// Init restores the persisted theme. Missing or unknown values fall back to
// the fallback theme, Default unless SetFallback was called.
func (s *Store) Init() Theme {
	s.mu.Lock()
	t := s.fallback
	s.mu.Unlock()
	if s.kv != nil {
		if name, ok := s.kv.Get(StorageKey); ok {
			if stored, ok := Lookup(name); ok {
				t = stored
			} else {
				log.LogWithFields(log.F("theme", name)).Warn("Ignoring unknown stored theme")
			}
		}
	}
	s.apply(t)
	return t
}

// Current returns the selected theme.
func (s *Store) Current() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set selects and persists the theme called name.
func (s *Store) Set(name string) error {
	t, ok := Lookup(name)
	if !ok {
		return errors.NewConfigError("unknown theme", name, errors.UnknownTheme, nil)
	}
	if s.kv != nil {
		if err := s.kv.Set(StorageKey, name); err != nil {
			return errors.Wrapf(err, "failed to persist theme %s", name)
		}
	}
	s.apply(t)
	return nil
}

// Cycle selects the next theme.
func (s *Store) Cycle() (Theme, error) {
	next := Next(s.Current().Name)
	if err := s.Set(next.Name); err != nil {
		return s.Current(), err
	}
	return next, nil
}

// Subscribe registers fn for theme changes and returns a function that
// removes it.
func (s *Store) Subscribe(fn func(Theme)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) apply(t Theme) {
	s.mu.Lock()
	changed := s.current.Name != t.Name
	s.current = t
	subs := make([]func(Theme), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	log.LogWithFields(log.F("theme", t.Name)).Debug("Theme changed")
	for _, fn := range subs {
		fn(t)
	}
}
