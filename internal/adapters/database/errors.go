package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	apperrors "github.com/yogeshtekawade0602/bicycle-project/pkg/errors"
)

// storeError classifies a failed store call. Transport-level failures
// become Connectivity errors so the handlers and /health can report the
// backend as unreachable; everything else is Internal.
func storeError(message string, err error) *apperrors.AppError {
	var netErr net.Error
	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return apperrors.NewConnectivityError(message, err)
	default:
		return apperrors.NewInternalError(message, err)
	}
}
