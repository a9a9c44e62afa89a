package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/makrochain/loan-service/internal/application/dto"
	"github.com/makrochain/loan-service/internal/domain/port"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
	"github.com/makrochain/loan-service/pkg/keyedmutex"
)

const defaultSweepBatchSize = 500

// OverdueSweepUseCase is the periodic batch that moves ACTIVE loans past
// their due date to OVERDUE. Each candidate goes through the same per-loan
// lock as interactive requests, so a payment racing the sweep is never
// clobbered. The sweep is idempotent: a second run right after the first
// finds nothing left in ACTIVE to transition.
type OverdueSweepUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
	locks     *keyedmutex.KeyedMutex
	logger    *slog.Logger
	batchSize int
}

// NewOverdueSweepUseCase wires dependencies. batchSize bounds how many
// candidates a single invocation processes; zero means the default.
func NewOverdueSweepUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	locks *keyedmutex.KeyedMutex,
	logger *slog.Logger,
	batchSize int,
) *OverdueSweepUseCase {
	if batchSize <= 0 {
		batchSize = defaultSweepBatchSize
	}
	return &OverdueSweepUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
		locks:     locks,
		logger:    logger,
		batchSize: batchSize,
	}
}

// Execute runs one sweep. Cancellation is cooperative: once ctx is done no
// new per-loan transition is started, and the one in flight completes or
// rolls back whole.
func (uc *OverdueSweepUseCase) Execute(ctx context.Context) (dto.SweepResult, error) {
	now := time.Now().UTC()

	ids, err := uc.loanRepo.FindActivePastDueIDs(ctx, now, uc.batchSize)
	if err != nil {
		return dto.SweepResult{}, fmt.Errorf("find past-due loans: %w", err)
	}

	result := dto.SweepResult{Scanned: len(ids)}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			uc.logger.InfoContext(ctx, "overdue sweep cancelled",
				"scanned", result.Scanned,
				"transitioned", result.Transitioned,
			)
			return result, err
		}

		switch err := uc.sweepOne(ctx, id, now); {
		case err == nil:
			result.Transitioned++
		case isLostRace(err):
			// Someone repaid, restructured, or already marked the loan
			// between the candidate query and the lock. Nothing to do.
		default:
			result.Failed++
			uc.logger.ErrorContext(ctx, "overdue sweep: loan transition failed",
				"loan_id", id,
				"error", err,
			)
		}
	}

	uc.logger.InfoContext(ctx, "overdue sweep complete",
		"scanned", result.Scanned,
		"transitioned", result.Transitioned,
		"failed", result.Failed,
	)
	return result, nil
}

// sweepOne locks a single loan, re-checks its state, and applies the
// ACTIVE -> OVERDUE transition.
func (uc *OverdueSweepUseCase) sweepOne(ctx context.Context, id string, now time.Time) error {
	if err := uc.locks.Acquire(ctx, id); err != nil {
		if errors.Is(err, keyedmutex.ErrBusy) {
			return fmt.Errorf("lock loan %s: %w", id, valueobject.ErrBusy)
		}
		return fmt.Errorf("lock loan %s: %w", id, err)
	}
	defer uc.locks.Release(id)

	loan, err := uc.loanRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find loan: %w", err)
	}

	updated, err := loan.MarkOverdue(now)
	if err != nil {
		return fmt.Errorf("mark overdue: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, updated); err != nil {
		return fmt.Errorf("save loan: %w", err)
	}

	if err := uc.publisher.Publish(ctx, updated.DomainEvents()...); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}
	return nil
}

// isLostRace reports errors that mean the loan moved on between the candidate
// query and the locked re-read. They are expected under concurrency, not
// sweep failures.
func isLostRace(err error) bool {
	var transition *valueobject.InvalidTransitionError
	return errors.As(err, &transition) || errors.Is(err, valueobject.ErrNotFound)
}
