package gcs

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

// WrapError converts a Google API error to the matching domain backend
// error. The original error text is kept in the message.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	var sentinel error
	switch gerr.Code {
	case http.StatusUnauthorized:
		sentinel = domain.ErrBackendUnauthorized
	case http.StatusForbidden:
		sentinel = domain.ErrBackendForbidden
	case http.StatusNotFound:
		sentinel = domain.ErrBackendNotFound
	case http.StatusTooManyRequests:
		sentinel = domain.ErrBackendRateLimited
	default:
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
