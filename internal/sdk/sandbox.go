package sdk

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/DaanHessen/survey-demo-tui/internal/store"
)

// People is the persistence the sandbox needs. *store.PersonRepo satisfies it.
type People interface {
	Create(ctx context.Context, environmentID string) (store.Person, error)
	Latest(ctx context.Context, environmentID string) (store.Person, error)
	SetUserID(ctx context.Context, personID uuid.UUID, userID string) error
	SetAttribute(ctx context.Context, personID uuid.UUID, key, value string) error
	RecordAction(ctx context.Context, personID uuid.UUID, name string) error
}

// Sandbox is a local stand-in for the hosted SDK. It keeps one current person
// per environment and records everything against it.
type Sandbox struct {
	people        People
	environmentID string

	mu      sync.Mutex
	current *store.Person
}

func NewSandbox(people People, environmentID string) *Sandbox {
	return &Sandbox{people: people, environmentID: environmentID}
}

// Current returns a copy of the person calls are attached to, creating one if needed.
func (s *Sandbox) Current(ctx context.Context) (store.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.person(ctx)
	if err != nil {
		return store.Person{}, err
	}
	return clonePerson(*p), nil
}

// person must be called with mu held.
func (s *Sandbox) person(ctx context.Context) (*store.Person, error) {
	if s.current != nil {
		return s.current, nil
	}
	p, err := s.people.Latest(ctx, s.environmentID)
	if errors.Is(err, store.ErrNotFound) {
		p, err = s.people.Create(ctx, s.environmentID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "resolve current person")
	}
	if p.Attributes == nil {
		p.Attributes = map[string]string{}
	}
	s.current = &p
	return s.current, nil
}

// Logout drops the current person and starts a new one.
func (s *Sandbox) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.people.Create(ctx, s.environmentID)
	if err != nil {
		return errors.Wrap(err, "logout")
	}
	if p.Attributes == nil {
		p.Attributes = map[string]string{}
	}
	s.current = &p
	return nil
}

func (s *Sandbox) Track(ctx context.Context, action string) error {
	if strings.TrimSpace(action) == "" {
		return ErrEmptyAction
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.person(ctx)
	if err != nil {
		return err
	}
	return errors.Wrapf(s.people.RecordAction(ctx, p.ID, action), "track %q", action)
}

func (s *Sandbox) SetAttribute(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyAttributeKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.person(ctx)
	if err != nil {
		return err
	}
	if err := s.people.SetAttribute(ctx, p.ID, key, value); err != nil {
		return errors.Wrapf(err, "set attribute %q", key)
	}
	p.Attributes[key] = value
	return nil
}

func (s *Sandbox) SetEmail(ctx context.Context, email string) error {
	return s.SetAttribute(ctx, EmailAttribute, email)
}

// SetUserID is idempotent for the same id; a different id needs a Logout first.
func (s *Sandbox) SetUserID(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.person(ctx)
	if err != nil {
		return err
	}
	switch p.UserID {
	case userID:
		return nil
	case "":
	default:
		return ErrUserIDAlreadySet
	}
	if err := s.people.SetUserID(ctx, p.ID, userID); err != nil {
		return errors.Wrap(err, "set user id")
	}
	p.UserID = userID
	return nil
}

func clonePerson(p store.Person) store.Person {
	attrs := make(map[string]string, len(p.Attributes))
	for k, v := range p.Attributes {
		attrs[k] = v
	}
	p.Attributes = attrs
	return p
}
