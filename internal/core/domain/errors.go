package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure in the terminal wraps exactly one of these.
var (
	ErrConfig          = errors.New("api endpoint not configured")
	ErrNetwork         = errors.New("network error")
	ErrValidation      = errors.New("validation failed")
	ErrServerRejection = errors.New("server rejected request")
)

var (
	ErrCartEmpty          = fmt.Errorf("%w: cart empty", ErrValidation)
	ErrNameRequired       = fmt.Errorf("%w: item name required", ErrValidation)
	ErrNegativePrice      = fmt.Errorf("%w: price must not be negative", ErrValidation)
	ErrEmptyBarcode       = fmt.Errorf("%w: empty barcode", ErrValidation)
	ErrAPIURLEmpty        = fmt.Errorf("%w: API URL empty", ErrValidation)
	ErrItemNotFound       = fmt.Errorf("%w: item not found", ErrValidation)
	ErrAssetNotFound      = fmt.Errorf("%w: asset not found", ErrValidation)
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)
