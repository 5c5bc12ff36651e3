package apis

import (
	"fmt"

	"github.com/google/uuid"
)

// ApiError is returned when an upstream API answers with anything other than success or 404.
type ApiError struct {
	Api        string
	ID         uuid.UUID
	StatusCode int
	Body       string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("failed to get %s details for id %s. Status code: %d; Message: %s", e.Api, e.ID, e.StatusCode, e.Body)
}

// Transient reports whether the failure is worth retrying.
func (e *ApiError) Transient() bool {
	switch e.StatusCode {
	case 502, 503, 504:
		return true
	default:
		return false
	}
}
