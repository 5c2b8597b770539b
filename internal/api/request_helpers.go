package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskmanager/api/internal/domain"
)

// getPathID extracts a numeric task ID from the URL path parameters.
// It parses and validates the ID, handling common error cases.
//
// Returns:
//   - (id, nil): The parsed ID if valid
//   - (0, error): Zero and an appropriate error if the parameter is missing,
//     malformed, or not positive
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	if id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be positive", domain.ErrInvalidID)
	}

	return id, nil
}
