// Package recipe holds the client-side recipe store and the parsing of the
// add-recipe form into a submittable draft.
package recipe

import (
	"strings"
	"sync"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Store holds the most recently fetched recipe collection. The collection
// is only ever replaced as a whole; it is never merged or edited in place.
// Safe for concurrent reads.
type Store struct {
	mu      sync.RWMutex
	recipes []domain.Recipe
	log     *logger.Logger
}

// NewStore creates an empty store.
func NewStore(log *logger.Logger) *Store {
	return &Store{log: log}
}

// ReplaceAll discards the current contents and stores recipes in the order
// given. The slice is copied so later changes by the caller are not seen.
func (s *Store) ReplaceAll(recipes []domain.Recipe) {
	cp := make([]domain.Recipe, len(recipes))
	copy(cp, recipes)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.recipes = cp
	s.log.Debug("store replaced, count=%d", len(cp))
}

// Find returns the recipe with the given ID.
func (s *Store) Find(id int) (domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.recipes {
		if r.ID == id {
			return r, nil
		}
	}
	s.log.Debug("recipe not found: %d", id)
	return domain.Recipe{}, domain.ErrNotFound
}

// Search returns the recipes whose title or description contains term,
// ignoring case. An empty term matches every recipe. The result is a new
// slice in store order.
func (s *Store) Search(term string) []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(term)
	s.log.Debug("searching recipes for: %q", q)

	out := make([]domain.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

// All returns a copy of the stored collection.
func (s *Store) All() []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Len returns the number of stored recipes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

func matches(r domain.Recipe, query string) bool {
	if strings.Contains(strings.ToLower(r.Title), query) {
		return true
	}
	return strings.Contains(strings.ToLower(r.Description), query)
}
