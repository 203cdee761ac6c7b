package productform

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/session"
)

// mapError translates domain and session errors into gRPC status codes.
// Unknown errors become codes.Internal.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	// Not found
	if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, session.ErrSessionNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}

	// Invalid argument
	switch {
	case errors.Is(err, session.ErrEmptySessionID),
		errors.Is(err, domain.ErrEmptyProductID),
		errors.Is(err, domain.ErrUnknownTab),
		errors.Is(err, domain.ErrInvalidOffer),
		errors.Is(err, domain.ErrUnknownOffer):
		return status.Error(codes.InvalidArgument, err.Error())
	}

	if errors.Is(err, domain.ErrMachineClosed) {
		return status.Error(codes.Aborted, err.Error())
	}

	// Failed precondition (state guards)
	if errors.Is(err, domain.ErrEventRejected) {
		return status.Error(codes.FailedPrecondition, err.Error())
	}

	var lerr *domain.LoadError
	if errors.As(err, &lerr) {
		return status.Error(codes.Unavailable, err.Error())
	}

	return status.Error(codes.Internal, err.Error())
}
