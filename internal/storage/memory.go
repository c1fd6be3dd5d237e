package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/trinitynoble/BudgetBuddyProject/internal/models"
	usermodel "github.com/trinitynoble/BudgetBuddyProject/internal/models/user"
)

// MemoryUserStore is a map-backed UserStore used by tests.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*usermodel.User // keyed by id
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users: make(map[string]*usermodel.User),
	}
}

func (s *MemoryUserStore) Create(_ context.Context, req *usermodel.CreateUserRequest, passwordHash string) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == req.Email {
			return nil, ErrDuplicateEmail
		}
	}

	now := time.Now()
	u := &usermodel.User{
		ID:           uuid.New().String(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
		TokenVersion: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[u.ID] = u

	clone := *u
	return &clone, nil
}

func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *MemoryUserStore) GetByID(_ context.Context, userID string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.users[userID]
	if !exists {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (s *MemoryUserStore) UpdatePassword(_ context.Context, email, passwordHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			u.PasswordHash = passwordHash
			u.TokenVersion++
			u.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

// Delete removes a user row. Only tests need this; it simulates the
// account vanishing between token issuance and a write.
func (s *MemoryUserStore) Delete(_ context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
}

// MemoryRecordStore is a map-backed RecordStore used by tests. When a
// users store is attached, Create enforces the foreign key the way
// Postgres would.
type MemoryRecordStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]*models.Record
	users   *MemoryUserStore
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{
		nextID:  1,
		records: make(map[int64]*models.Record),
	}
}

// WithUsers attaches a user store for referential-integrity checks.
func (s *MemoryRecordStore) WithUsers(users *MemoryUserStore) *MemoryRecordStore {
	s.users = users
	return s
}

func (s *MemoryRecordStore) ListByUser(_ context.Context, userID string) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(r *models.Record) bool {
		return r.UserID == userID
	}), nil
}

func (s *MemoryRecordStore) Latest(_ context.Context, userID string) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := s.collect(func(r *models.Record) bool {
		return r.UserID == userID
	})
	if len(owned) == 0 {
		return nil, nil
	}
	return owned[0], nil
}

func (s *MemoryRecordStore) Create(ctx context.Context, userID string, in *models.RecordInput) (*models.Record, error) {
	if s.users != nil {
		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, ErrUserVanished
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	rec := &models.Record{
		ID:          s.nextID,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.records[rec.ID] = rec

	clone := *rec
	return &clone, nil
}

func (s *MemoryRecordStore) GetOwned(_ context.Context, id int64, userID string) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.records[id]
	if !exists || rec.UserID != userID {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (s *MemoryRecordStore) OwnerOf(_ context.Context, id int64) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.records[id]
	if !exists {
		return "", false, nil
	}
	return rec.UserID, true, nil
}

func (s *MemoryRecordStore) Update(_ context.Context, id int64, userID string, in *models.RecordInput) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.records[id]
	if !exists || rec.UserID != userID {
		return nil, nil
	}

	rec.Amount = in.Amount
	rec.Description = in.Description
	rec.Date = in.Date
	rec.UpdatedAt = time.Now()

	clone := *rec
	return &clone, nil
}

func (s *MemoryRecordStore) Delete(_ context.Context, id int64, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.records[id]
	if !exists || rec.UserID != userID {
		return false, nil
	}

	delete(s.records, id)
	return true, nil
}

func (s *MemoryRecordStore) Search(_ context.Context, userID, query string) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	return s.collect(func(r *models.Record) bool {
		if r.UserID != userID {
			return false
		}
		amount := fmt.Sprintf("%g", r.Amount)
		return strings.Contains(strings.ToLower(r.Description), needle) ||
			strings.Contains(amount, needle) ||
			strings.Contains(r.Date, needle)
	}), nil
}

// collect returns matching records newest-first. Callers hold the lock.
func (s *MemoryRecordStore) collect(match func(*models.Record) bool) []*models.Record {
	var records []*models.Record
	for _, rec := range s.records {
		if match(rec) {
			clone := *rec
			records = append(records, &clone)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ID > records[j].ID
	})

	return records
}
