package session

import (
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Store keeps live sessions in an LRU cache so abandoned sessions age
// out under memory pressure. Nothing survives a process restart.
type Store struct {
	cache *lru.Cache[string, *Session]
}

func NewStore(capacity int) (*Store, error) {
	if capacity <= 0 {
		capacity = 1024
	}
	cache, err := lru.New[string, *Session](capacity)
	if err != nil {
		return nil, err
	}
	return &Store{cache: cache}, nil
}

// Create allocates a fresh idle session.
func (st *Store) Create() *Session {
	s := &Session{ID: uuid.NewString(), state: StateIdle}
	st.cache.Add(s.ID, s)
	return s
}

func (st *Store) Get(id string) (*Session, bool) {
	return st.cache.Get(id)
}

func (st *Store) Len() int {
	return st.cache.Len()
}
