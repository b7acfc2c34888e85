package store

import (
	"context"
	"slices"
	"sync"

	"blog/domain"

	"github.com/google/uuid"
)

// MemoryStore keeps posts in a map. Data is lost when the process exits.
type MemoryStore struct {
	mu    sync.RWMutex
	posts map[string]domain.Post
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{posts: make(map[string]domain.Post)}
}

func (s *MemoryStore) Create(_ context.Context, p *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	s.posts[p.ID] = *p
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return domain.Post{}, domain.ErrPostNotFound
	}
	return p, nil
}

func (s *MemoryStore) Update(_ context.Context, p domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[p.ID]; ok {
		s.posts[p.ID] = p
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]domain.Post, error) {
	s.mu.RLock()
	posts := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	s.mu.RUnlock()
	slices.SortFunc(posts, func(a, b domain.Post) int {
		return b.Date.Compare(a.Date)
	})
	return posts, nil
}

func (s *MemoryStore) Close(context.Context) error {
	return nil
}
