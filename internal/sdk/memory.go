package sdk

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DaanHessen/survey-demo-tui/internal/store"
)

// MemoryPeople keeps sandbox people in process; used with --offline.
type MemoryPeople struct {
	mu      sync.Mutex
	people  map[uuid.UUID]*store.Person
	order   []uuid.UUID
	actions map[uuid.UUID][]store.Action
}

func NewMemoryPeople() *MemoryPeople {
	return &MemoryPeople{
		people:  map[uuid.UUID]*store.Person{},
		actions: map[uuid.UUID][]store.Action{},
	}
}

func (m *MemoryPeople) Create(ctx context.Context, environmentID string) (store.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &store.Person{ID: uuid.New(), EnvironmentID: environmentID, Attributes: map[string]string{}, CreatedAt: time.Now().UTC()}
	m.people[p.ID] = p
	m.order = append(m.order, p.ID)
	return clonePerson(*p), nil
}

func (m *MemoryPeople) Latest(ctx context.Context, environmentID string) (store.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.order) - 1; i >= 0; i-- {
		if p := m.people[m.order[i]]; p.EnvironmentID == environmentID {
			return clonePerson(*p), nil
		}
	}
	return store.Person{}, store.ErrNotFound
}

func (m *MemoryPeople) SetUserID(ctx context.Context, personID uuid.UUID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.people[personID]
	if !ok {
		return store.ErrNotFound
	}
	p.UserID = userID
	return nil
}

func (m *MemoryPeople) SetAttribute(ctx context.Context, personID uuid.UUID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.people[personID]
	if !ok {
		return store.ErrNotFound
	}
	p.Attributes[key] = value
	return nil
}

func (m *MemoryPeople) RecordAction(ctx context.Context, personID uuid.UUID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.people[personID]; !ok {
		return store.ErrNotFound
	}
	m.actions[personID] = append(m.actions[personID], store.Action{ID: uuid.New(), PersonID: personID, Name: name, CreatedAt: time.Now().UTC()})
	return nil
}

// RecentActions lists a person's actions, newest first.
func (m *MemoryPeople) RecentActions(ctx context.Context, personID uuid.UUID, limit int) ([]store.Action, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.actions[personID]
	out := make([]store.Action, 0, len(all))
	for i := len(all) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, all[i])
	}
	return out, nil
}
