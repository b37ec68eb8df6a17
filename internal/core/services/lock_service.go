package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/apperrors"
	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portsrepo "github.com/amaansodagar786/credence_backend/internal/core/ports/repositories"
	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/events"
)

// lockService implements the LockSvcFacade interface
type lockService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
}

// NewLockService creates a new lock service with the provided dependencies
func NewLockService(documentRepo portsrepo.DocumentRepositoryFacade, options ...ServiceOption) portssvc.LockSvcFacade {
	svc := &lockService{documentRepo: documentRepo}
	svc.apply(options)
	return svc
}

// Ensure lockService implements the LockSvcFacade interface
var _ portssvc.LockSvcFacade = (*lockService)(nil)

// RequestMonthLock locks or unlocks a whole month.
func (s *lockService) RequestMonthLock(ctx context.Context, actor domain.Actor, clientID string, period domain.Period, lock bool) (*domain.MonthDocument, error) {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := period.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	month, err := s.findMonth(ctx, clientID, period)
	if err != nil {
		return nil, err
	}

	if err := domain.CheckLockTransition(month, domain.LockScopeMonth, domain.CategoryRef{}, lock); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyInState) {
			return nil, apperrors.NewRuleError(apperrors.ErrAlreadyInState,
				fmt.Sprintf("Month %s is already %s", period, lockWord(lock)))
		}
		return nil, err
	}

	lockedBy, lockedAt := s.lockStamp(actor, lock)
	if err := s.documentRepo.SetMonthLock(ctx, clientID, period, lock, lockedBy, lockedAt); err != nil {
		s.LogError(ctx, err, "Failed to update month lock",
			slog.String("client_id", clientID),
			slog.String("period", period.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Month lock changed",
		slog.String("client_id", clientID),
		slog.String("period", period.String()),
		slog.Bool("locked", lock))
	s.Publish(ctx, events.TypeMonthLockChanged, clientID, actor, map[string]any{
		"year":   period.Year,
		"month":  period.Month,
		"locked": lock,
	})

	return s.findMonth(ctx, clientID, period)
}

// RequestCategoryLock locks or unlocks one category of a month.
func (s *lockService) RequestCategoryLock(ctx context.Context, actor domain.Actor, clientID string, period domain.Period, ref domain.CategoryRef, lock bool) (*domain.MonthDocument, error) {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := period.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if err := ref.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	month, err := s.findMonth(ctx, clientID, period)
	if err != nil {
		return nil, err
	}

	if err := domain.CheckLockTransition(month, domain.LockScopeCategory, ref, lock); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyInState) {
			return nil, apperrors.NewRuleError(apperrors.ErrAlreadyInState, categoryStateMessage(month, ref, lock))
		}
		return nil, err
	}

	lockedBy, lockedAt := s.lockStamp(actor, lock)
	if err := s.documentRepo.SetCategoryLock(ctx, clientID, period, ref, lock, lockedBy, lockedAt); err != nil {
		s.LogError(ctx, err, "Failed to update category lock",
			slog.String("client_id", clientID),
			slog.String("period", period.String()),
			slog.String("category", ref.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Category lock changed",
		slog.String("client_id", clientID),
		slog.String("period", period.String()),
		slog.String("category", ref.String()),
		slog.Bool("locked", lock))
	s.Publish(ctx, events.TypeCategoryLockChanged, clientID, actor, map[string]any{
		"year":         period.Year,
		"month":        period.Month,
		"categoryType": string(ref.Type),
		"categoryName": ref.Name,
		"locked":       lock,
	})

	return s.findMonth(ctx, clientID, period)
}

func (s *lockService) findMonth(ctx context.Context, clientID string, period domain.Period) (*domain.MonthDocument, error) {
	month, err := s.documentRepo.FindMonthDocument(ctx, clientID, period)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("No documents for %s", period))
		}
		s.LogError(ctx, err, "Failed to load month document",
			slog.String("client_id", clientID),
			slog.String("period", period.String()))
		return nil, err
	}
	return month, nil
}

// lockStamp returns the audit pair recorded on lock; both are nil on unlock.
func (s *lockService) lockStamp(actor domain.Actor, lock bool) (*string, *time.Time) {
	if !lock {
		return nil, nil
	}
	by := actor.UserID
	at := s.Now()
	return &by, &at
}

func categoryStateMessage(month *domain.MonthDocument, ref domain.CategoryRef, lock bool) string {
	bucket, _ := month.Bucket(ref)
	if month.IsLocked && !bucket.IsLocked {
		if lock {
			return fmt.Sprintf("Category %s is already locked through the month lock", ref)
		}
		return fmt.Sprintf("Category %s is locked through the month lock; unlock the month instead", ref)
	}
	return fmt.Sprintf("Category %s is already %s", ref, lockWord(lock))
}

func lockWord(lock bool) string {
	if lock {
		return "locked"
	}
	return "unlocked"
}
