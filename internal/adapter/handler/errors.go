package handler

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/smart-pos/internal/core/domain"
)

func httpStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrAssetNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCheckoutInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConfig):
		return http.StatusPreconditionFailed
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrServerRejection):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func grpcError(err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrAssetNotFound):
		code = codes.NotFound
	case errors.Is(err, domain.ErrCheckoutInProgress):
		code = codes.Aborted
	case errors.Is(err, domain.ErrConfig):
		code = codes.FailedPrecondition
	case errors.Is(err, domain.ErrValidation):
		code = codes.InvalidArgument
	case errors.Is(err, domain.ErrNetwork):
		code = codes.Unavailable
	case errors.Is(err, domain.ErrServerRejection):
		code = codes.Internal
	default:
		code = codes.Unknown
	}
	return status.Error(code, err.Error())
}
