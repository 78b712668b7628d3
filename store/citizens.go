package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"civicconnect-be/apperrors"
	"civicconnect-be/models"
)

// CitizenStore holds the citizen accounts and their reward points. Same
// discipline as the issue store: in-memory collection, whole-collection
// persistence, failed saves leave prior state untouched.
type CitizenStore struct {
	mu      sync.RWMutex
	backend CitizenBackend
	list    []models.Citizen
	now     func() time.Time
}

func NewCitizenStore(backend CitizenBackend) *CitizenStore {
	return &CitizenStore{backend: backend, now: time.Now}
}

// Load pulls the collection from the backend, seeding the demo citizens when
// the backend has no data.
func (s *CitizenStore) Load(ctx context.Context) error {
	citizens, err := s.backend.LoadCitizens(ctx)
	if err != nil {
		return fmt.Errorf("load citizens: %w", err)
	}
	if citizens == nil {
		citizens = seedCitizens(s.now())
		if err := s.backend.SaveCitizens(ctx, citizens); err != nil {
			return fmt.Errorf("seed citizens: %w", err)
		}
		log.WithField("count", len(citizens)).Info("seeded demo citizens")
	}

	s.mu.Lock()
	s.list = citizens
	s.mu.Unlock()
	return nil
}

// List returns a copy of all citizens.
func (s *CitizenStore) List() []models.Citizen {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Citizen, len(s.list))
	copy(out, s.list)
	return out
}

// Get returns the citizen with the given id.
func (s *CitizenStore) Get(id string) (models.Citizen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.list {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Citizen{}, apperrors.ErrNotFound
}

// FindByEmail returns the citizen registered with the given email address.
func (s *CitizenStore) FindByEmail(email string) (models.Citizen, error) {
	email = strings.ToLower(email)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.list {
		if strings.ToLower(c.Email) == email && c.Email != "" {
			return c, nil
		}
	}
	return models.Citizen{}, apperrors.ErrNotFound
}

// Register creates a citizen account with zero points. The password must
// already be hashed by the caller.
func (s *CitizenStore) Register(ctx context.Context, citizen models.Citizen) (models.Citizen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.list {
		if c.Email != "" && strings.EqualFold(c.Email, citizen.Email) {
			return models.Citizen{}, fmt.Errorf("citizen with email %s already exists", citizen.Email)
		}
	}

	now := s.now()
	citizen.ID = uuid.NewString()
	citizen.Points = 0
	citizen.CreatedAt = now
	citizen.UpdatedAt = now

	updated := make([]models.Citizen, len(s.list), len(s.list)+1)
	copy(updated, s.list)
	updated = append(updated, citizen)

	if err := s.backend.SaveCitizens(ctx, updated); err != nil {
		return models.Citizen{}, fmt.Errorf("save citizens: %w", err)
	}
	s.list = updated
	return citizen, nil
}

// AddPoints increments a citizen's point balance.
func (s *CitizenStore) AddPoints(ctx context.Context, id string, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.list {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperrors.ErrNotFound
	}

	updated := make([]models.Citizen, len(s.list))
	copy(updated, s.list)
	updated[idx].Points += points
	updated[idx].UpdatedAt = s.now()

	if err := s.backend.SaveCitizens(ctx, updated); err != nil {
		return fmt.Errorf("save citizens: %w", err)
	}
	s.list = updated
	return nil
}
