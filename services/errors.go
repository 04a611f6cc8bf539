package services

import (
	"context"
	"errors"

	"taskflow/apperror"
	"taskflow/store"
)

// storeError maps persistence failures onto the API error taxonomy.
// notFound is the client message used when the document is missing.
func storeError(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, store.ErrVersionConflict):
		return apperror.Wrap(apperror.CodeStale, "Task was modified concurrently, reload and retry", err)
	case errors.Is(err, store.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return apperror.Wrap(apperror.CodeUnavailable, "Service temporarily unavailable", err)
	default:
		return apperror.Internal(err)
	}
}
