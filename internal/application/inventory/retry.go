package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jhoicas/pos-inventory/internal/domain"
)

// DefaultMaxRetries reintentos por defecto ante domain.ErrConflict.
const DefaultMaxRetries = 3

// RetryOnConflict ejecuta op y la repite con backoff exponencial solo mientras falle con
// domain.ErrConflict. Cualquier otro error se devuelve de inmediato.
// onRetry (opcional) se invoca antes de cada reintento.
func RetryOnConflict(ctx context.Context, maxRetries int, op func() error, onRetry func(error)) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 20 * time.Millisecond
	eb.MaxInterval = 500 * time.Millisecond
	eb.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(maxRetries)), ctx)

	attempt := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !domain.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, _ time.Duration) {
		if onRetry != nil {
			onRetry(err)
		}
	}
	err := backoff.RetryNotify(attempt, policy, notify)
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Err
	}
	return err
}
