package repos

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"

	"github.com/verdora/verdora-backend/internal/apierr"
	"github.com/verdora/verdora-backend/internal/logger"
)

const (
	readRetryAttempts = 3
	readRetryInterval = 500 * time.Millisecond
)

// withReadRetry retries a read-only store operation on transient errors.
// Writes are never routed through here: retrying an insert risks duplicate
// rows, while re-running a read is always safe.
func withReadRetry(ctx context.Context, log *logger.Logger, op string, fn func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(readRetryInterval), readRetryAttempts-1),
		ctx,
	)
	err := backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		log.Warn("Transient store error, retrying", "op", op, "error", err)
		return err
	}, policy)
	if err != nil && isTransient(err) {
		return apierr.StoreUnavailable(err)
	}
	return err
}

func isTransient(err error) bool {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}

// MapError converts raw store errors into the API taxonomy.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if apiErr := apierr.From(err); apiErr != nil {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apierr.StoreConstraintViolation(err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apierr.NotFound(err)
	default:
		return apierr.StoreUnavailable(err)
	}
}
