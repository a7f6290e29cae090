package search

import (
	"context"
	"sort"
	"strings"
	"sync"

	dom "github.com/gdps-go/gdps/internal/ports"
)

// Memory is an in-process index used in tests and single-node setups.
type Memory struct {
	mu     sync.RWMutex
	users  map[int]UserDocument
	levels map[int]LevelDocument
}

var _ Index = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		users:  make(map[int]UserDocument),
		levels: make(map[int]LevelDocument),
	}
}

func (m *Memory) UpsertUsers(_ context.Context, users ...*dom.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range users {
		m.users[u.ID] = NewUserDocument(u)
	}
	return nil
}

// User returns the stored document for id.
func (m *Memory) User(id int) (UserDocument, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.users[id]
	return d, ok
}

func (m *Memory) SearchUsers(_ context.Context, q dom.UserSearchQuery) (dom.SearchResult, error) {
	m.mu.RLock()
	needle := strings.ToLower(strings.TrimSpace(q.Query))
	var hits []UserDocument
	for _, d := range m.users {
		if !q.IncludePrivate && !d.IsPublic {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(d.Username), needle) {
			continue
		}
		hits = append(hits, d)
	}
	m.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		ei := strings.EqualFold(hits[i].Username, needle)
		ej := strings.EqualFold(hits[j].Username, needle)
		if ei != ej {
			return ei
		}
		if hits[i].Stars != hits[j].Stars {
			return hits[i].Stars > hits[j].Stars
		}
		return hits[i].ID < hits[j].ID
	})
	offset, limit := pageBounds(q.Page, q.PageSize)
	res := dom.SearchResult{Total: len(hits)}
	for i := offset; i < len(hits) && i < offset+limit; i++ {
		res.IDs = append(res.IDs, hits[i].ID)
	}
	return res, nil
}

func (m *Memory) UpsertLevels(_ context.Context, levels ...*dom.Level) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range levels {
		if l.Deleted {
			delete(m.levels, l.ID)
			continue
		}
		m.levels[l.ID] = NewLevelDocument(l)
	}
	return nil
}

// Level returns the stored document for id.
func (m *Memory) Level(id int) (LevelDocument, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.levels[id]
	return d, ok
}

func (m *Memory) DeleteLevel(_ context.Context, id int) error {
	m.mu.Lock()
	delete(m.levels, id)
	m.mu.Unlock()
	return nil
}

func (m *Memory) SearchLevels(_ context.Context, q dom.LevelSearchQuery) (dom.SearchResult, error) {
	m.mu.RLock()
	needle := ""
	if q.Type == dom.SearchQuery {
		needle = strings.ToLower(strings.TrimSpace(q.Query))
	}
	var hits []LevelDocument
	for _, d := range m.levels {
		if !matchLevel(d, q) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(d.Name), needle) {
			continue
		}
		hits = append(hits, d)
	}
	m.mu.RUnlock()

	order := levelOrder(q.Type)
	sort.Slice(hits, func(i, j int) bool {
		for _, k := range order {
			a, b := levelField(hits[i], k.field), levelField(hits[j], k.field)
			if a == b {
				continue
			}
			if k.desc {
				return a > b
			}
			return a < b
		}
		return false
	})
	offset, limit := pageBounds(q.Page, q.PageSize)
	res := dom.SearchResult{Total: len(hits)}
	for i := offset; i < len(hits) && i < offset+limit; i++ {
		res.IDs = append(res.IDs, hits[i].ID)
	}
	return res, nil
}

func levelField(d LevelDocument, field string) int {
	switch field {
	case "downloads":
		return d.Downloads
	case "likes":
		return d.Likes
	case "feature_order":
		return d.FeatureOrder
	}
	return d.ID
}
