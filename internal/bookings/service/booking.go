package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "bookly/internal/bookings/errors"
	"bookly/internal/bookings/events"
	"bookly/internal/bookings/repository"
	"bookly/internal/bookings/validator"
	"bookly/pkg/config"
	apperrors "bookly/pkg/errors"
	"bookly/pkg/model"
	"bookly/pkg/sanitizer"
	"bookly/pkg/timeslot"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// Client-facing messages. Tests pin these texts, so every
	// not-found path must produce the identical string.
	MsgSlotTaken      = "Time slot is already booked."
	MsgNotFound       = "Booking not found."
	MsgCheckFailed    = "Failed to check slot availability."
	MsgCreateFailed   = "An error occurred while creating the booking."
	MsgUpdateFailed   = "Failed to update the booking."
	MsgDeleteFailed   = "Failed to delete the booking."
	MsgFetchFailed    = "Failed to fetch bookings."
	slotLockTTL       = 10 * time.Second
	slotLockKeyFormat = "slot_%s_%s_%s"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context) ([]*model.Booking, error)
	Update(ctx context.Context, id string, booking *model.Booking) (*model.Booking, error)
	Delete(ctx context.Context, id string) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.SlotLockRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.SlotLockRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create validates the candidate, proves the slot free, and persists
// it. The advisory lock plus the transactional re-check close the
// check-then-act window for identical slots; overlapping but unequal
// intervals submitted concurrently can still race (the lock keys on
// the exact triple, not the interval).
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	release, err := s.acquireSlotLock(ctx, booking)
	if err != nil {
		return err
	}
	defer release()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.checkSlotAvailable(sessCtx, booking, ""); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal(MsgCreateFailed, err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("create", err, "user", booking.User, "date", booking.Date)
		return err
	}

	s.publisher.BookingCreated(ctx, booking)
	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"date", booking.Date,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFound(MsgNotFound)
		}
		return nil, apperrors.Internal(MsgFetchFailed, err)
	}
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal(MsgFetchFailed, err)
	}

	// Callers always get an array, never null. Order is unspecified.
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, nil
}

// Update replaces all four fields of an existing booking, re-checking
// the overlap invariant against every other booking. The record being
// updated is excluded so a booking never conflicts with itself.
func (s *bookingService) Update(ctx context.Context, id string, booking *model.Booking) (*model.Booking, error) {
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return nil, err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.checkSlotAvailable(sessCtx, booking, id); err != nil {
			return err
		}
		if err := s.repo.Update(sessCtx, id, booking); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFound(MsgNotFound)
			}
			return apperrors.Internal(MsgUpdateFailed, err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("update", err, "id", id)
		return nil, err
	}

	s.publisher.BookingUpdated(ctx, booking)
	s.cfg.Log.Info("Booking updated", "id", id)
	return booking, nil
}

// Delete removes the booking and returns its last-known state so the
// caller can confirm what was destroyed.
func (s *bookingService) Delete(ctx context.Context, id string) (*model.Booking, error) {
	var removed *model.Booking

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		booking, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFound(MsgNotFound)
			}
			return apperrors.Internal(MsgDeleteFailed, err)
		}

		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFound(MsgNotFound)
			}
			return apperrors.Internal(MsgDeleteFailed, err)
		}

		removed = booking
		return nil
	})
	if err != nil {
		s.logFailure("delete", err, "id", id)
		return nil, err
	}

	s.publisher.BookingDeleted(ctx, removed)
	s.cfg.Log.Info("Booking deleted", "id", id)
	return removed, nil
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.User = sanitizer.NormalizeUser(b.User)
}

func (s *bookingService) validate(b *model.Booking) error {
	if err := s.validator.Validate(b); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation(err.Error())
	}
	return nil
}

// checkSlotAvailable enforces the same-date overlap invariant. A
// storage failure here is an availability-check fault, never reported
// as "slot unavailable".
func (s *bookingService) checkSlotAvailable(ctx context.Context, candidate *model.Booking, excludeID string) error {
	existing, err := s.repo.FindByDate(ctx, candidate.Date)
	if err != nil {
		return apperrors.Internal(MsgCheckFailed, err)
	}

	// Times are normalized before this point, so parsing cannot fail
	// on the candidate; stored records went through the same path.
	candidateInterval, err := timeslot.NewInterval(candidate.StartTime, candidate.EndTime)
	if err != nil {
		return apperrors.Internal(MsgCheckFailed, err)
	}

	for _, b := range existing {
		if excludeID != "" && b.ID == excludeID {
			continue
		}

		interval, err := timeslot.NewInterval(b.StartTime, b.EndTime)
		if err != nil {
			return apperrors.Internal(MsgCheckFailed, fmt.Errorf("stored booking %s has unparseable times: %w", b.ID, err))
		}

		if candidateInterval.Overlaps(interval) {
			return apperrors.Conflict(MsgSlotTaken)
		}
	}

	return nil
}

func (s *bookingService) acquireSlotLock(ctx context.Context, booking *model.Booking) (func(), error) {
	lockID := fmt.Sprintf(slotLockKeyFormat, booking.Date, booking.StartTime, booking.EndTime)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(slotLockTTL),
	}

	if err := s.lockRepo.Acquire(ctx, lock); err != nil {
		if errors.Is(err, bookingserrors.ErrLockHeld) {
			return nil, apperrors.Conflict(MsgSlotTaken)
		}
		return nil, apperrors.Internal(MsgCreateFailed, err)
	}

	return func() {
		if err := s.lockRepo.Release(ctx, lockID); err != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", err)
		}
	}, nil
}

func (s *bookingService) logFailure(op string, err error, args ...any) {
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() >= 500 {
		s.cfg.Log.Error("Booking "+op+" failed", append(args, "error", err)...)
		return
	}
	// Validation, conflict and not-found outcomes are expected; keep
	// them out of the error stream.
	s.cfg.Log.Debug("Booking "+op+" rejected", append(args, "reason", appErr.Message)...)
}
