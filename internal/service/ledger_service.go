package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/trinitynoble/BudgetBuddyProject/internal/apperr"
	"github.com/trinitynoble/BudgetBuddyProject/internal/logger"
	"github.com/trinitynoble/BudgetBuddyProject/internal/models"
	"github.com/trinitynoble/BudgetBuddyProject/internal/storage"
	"github.com/trinitynoble/BudgetBuddyProject/internal/validation"
)

// LedgerService implements the owner-scoped operations shared by
// transactions and budget items. One instance per resource, each bound
// to its own store.
type LedgerService struct {
	records storage.RecordStore
	log     *logger.Logger
}

func NewLedgerService(name string, records storage.RecordStore) *LedgerService {
	return &LedgerService{
		records: records,
		log:     logger.New(name),
	}
}

func validateInput(in *models.RecordInput) error {
	if strings.TrimSpace(in.Description) == "" {
		return invalid(validation.ErrFieldRequired)
	}
	if err := validation.ValidateDate(in.Date); err != nil {
		return invalid(err)
	}
	return nil
}

// List returns all of the caller's records, newest first.
func (s *LedgerService) List(ctx context.Context, userID string) ([]*models.Record, error) {
	records, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("list failed for user %s: %v", userID, err)
		return nil, apperr.ErrStorage
	}
	if records == nil {
		records = []*models.Record{}
	}
	return records, nil
}

// Latest returns the caller's most recent record, or ErrNotFound when
// they have none.
func (s *LedgerService) Latest(ctx context.Context, userID string) (*models.Record, error) {
	rec, err := s.records.Latest(ctx, userID)
	if err != nil {
		s.log.Error("latest failed for user %s: %v", userID, err)
		return nil, apperr.ErrStorage
	}
	if rec == nil {
		return nil, apperr.ErrNotFound
	}
	return rec, nil
}

// Create stores a new record owned by the caller.
func (s *LedgerService) Create(ctx context.Context, userID string, in *models.RecordInput) (*models.Record, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	rec, err := s.records.Create(ctx, userID, in)
	if err != nil {
		if err == storage.ErrUserVanished {
			return nil, apperr.ErrInvalidToken
		}
		s.log.Error("create failed for user %s: %v", userID, err)
		return nil, apperr.ErrStorage
	}
	return rec, nil
}

// Get returns a record only when the caller owns it. Absent records and
// records owned by someone else are indistinguishable to the caller.
func (s *LedgerService) Get(ctx context.Context, id int64, userID string) (*models.Record, error) {
	rec, err := s.records.GetOwned(ctx, id, userID)
	if err != nil {
		s.log.Error("get %d failed: %v", id, err)
		return nil, apperr.ErrStorage
	}
	if rec == nil {
		return nil, apperr.ErrNotFound
	}
	return rec, nil
}

// Update replaces a record's fields. Writes distinguish absent records
// from records owned by someone else.
func (s *LedgerService) Update(ctx context.Context, id int64, userID string, in *models.RecordInput) (*models.Record, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	rec, err := s.records.Update(ctx, id, userID, in)
	if err != nil {
		s.log.Error("update %d failed: %v", id, err)
		return nil, apperr.ErrStorage
	}
	if rec != nil {
		return rec, nil
	}

	return nil, s.writeMiss(ctx, id)
}

// Delete removes a record the caller owns.
func (s *LedgerService) Delete(ctx context.Context, id int64, userID string) error {
	deleted, err := s.records.Delete(ctx, id, userID)
	if err != nil {
		s.log.Error("delete %d failed: %v", id, err)
		return apperr.ErrStorage
	}
	if deleted {
		return nil
	}

	return s.writeMiss(ctx, id)
}

// Search returns the caller's records matching a free-text query over
// description, amount and date. The query is required.
func (s *LedgerService) Search(ctx context.Context, userID, query string) ([]*models.Record, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is required", apperr.ErrValidation)
	}

	records, err := s.records.Search(ctx, userID, query)
	if err != nil {
		s.log.Error("search failed for user %s: %v", userID, err)
		return nil, apperr.ErrStorage
	}
	if records == nil {
		records = []*models.Record{}
	}
	return records, nil
}

// writeMiss decides whether a failed write was against a record that
// does not exist or one the caller does not own.
func (s *LedgerService) writeMiss(ctx context.Context, id int64) error {
	_, exists, err := s.records.OwnerOf(ctx, id)
	if err != nil {
		s.log.Error("owner check %d failed: %v", id, err)
		return apperr.ErrStorage
	}
	if exists {
		return apperr.ErrForbidden
	}
	return apperr.ErrNotFound
}
