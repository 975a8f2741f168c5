package validators

import (
	"fmt"
	"net/http"

	pkgerrors "github.com/fleetline/dispatch-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UUIDParam extracts and parses a uuid route parameter.
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s required", name))
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must be a uuid", name)).
			WithDetails(map[string]any{name: raw})
	}
	return id, nil
}
