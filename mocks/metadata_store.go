package mocks

import (
	"context"
	"sync"
)

// MetadataStore is an in-memory ports.MetadataService. Attributes can be
// seeded directly; Clear removes them and is recorded in Cleared.
type MetadataStore struct {
	mu sync.Mutex

	Attributes map[string]string
	Project    string
	ZoneName   string
	Instance   string
	Email      string

	ZoneErr  error
	ClearErr error
	GetErr   map[string]error

	Cleared []string
}

func NewMetadataStore(attrs map[string]string) *MetadataStore {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &MetadataStore{
		Attributes: attrs,
		Project:    "my-project",
		ZoneName:   "us-central1-f",
		Instance:   "spinnaker-1",
		Email:      "123-compute@developer.gserviceaccount.com",
	}
}

func (s *MetadataStore) Get(_ context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.GetErr[name]; err != nil {
		return "", err
	}
	return s.Attributes[name], nil
}

func (s *MetadataStore) Has(ctx context.Context, name string) (bool, error) {
	v, err := s.Get(ctx, name)
	return v != "", err
}

func (s *MetadataStore) Clear(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClearErr != nil {
		return s.ClearErr
	}
	delete(s.Attributes, name)
	s.Cleared = append(s.Cleared, name)
	return nil
}

func (s *MetadataStore) ProjectID(context.Context) (string, error) {
	return s.Project, nil
}

func (s *MetadataStore) Zone(context.Context) (string, error) {
	if s.ZoneErr != nil {
		return "", s.ZoneErr
	}
	return s.ZoneName, nil
}

func (s *MetadataStore) InstanceName(context.Context) (string, error) {
	return s.Instance, nil
}

func (s *MetadataStore) ServiceAccountEmail(context.Context) (string, error) {
	return s.Email, nil
}
