// Package store holds the records of truth: the issue and citizen
// collections, kept in memory and persisted whole through a pluggable
// backend, the way the original kept them as single browser-storage entries.
package store

import (
	"context"
	"sync"

	"civicconnect-be/models"
)

// IssueBackend persists the full issue collection. Load returning (nil, nil)
// means "no data" and triggers re-seeding with the demo records; an error
// means the backend itself failed and is propagated untouched.
type IssueBackend interface {
	LoadIssues(ctx context.Context) ([]models.Issue, error)
	SaveIssues(ctx context.Context, issues []models.Issue) error
}

// CitizenBackend persists the full citizen collection with the same
// contract as IssueBackend.
type CitizenBackend interface {
	LoadCitizens(ctx context.Context) ([]models.Citizen, error)
	SaveCitizens(ctx context.Context, citizens []models.Citizen) error
}

// MemoryBackend keeps both collections in process memory. It backs local
// development without Redis or Mongo and the test suites.
type MemoryBackend struct {
	mu       sync.Mutex
	issues   []models.Issue
	citizens []models.Citizen
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) LoadIssues(ctx context.Context) ([]models.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.issues == nil {
		return nil, nil
	}
	out := make([]models.Issue, len(m.issues))
	copy(out, m.issues)
	return out, nil
}

func (m *MemoryBackend) SaveIssues(ctx context.Context, issues []models.Issue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issues = make([]models.Issue, len(issues))
	copy(m.issues, issues)
	return nil
}

func (m *MemoryBackend) LoadCitizens(ctx context.Context) ([]models.Citizen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.citizens == nil {
		return nil, nil
	}
	out := make([]models.Citizen, len(m.citizens))
	copy(out, m.citizens)
	return out, nil
}

func (m *MemoryBackend) SaveCitizens(ctx context.Context, citizens []models.Citizen) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.citizens = make([]models.Citizen, len(citizens))
	copy(m.citizens, citizens)
	return nil
}
