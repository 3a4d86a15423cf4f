package rest

import (
	"fmt"
	"net/http"

	"github.com/altovivo/client-go/internal/domain"
)

// APIError error devuelto por el backend, con el cuerpo {code, message}.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap mapea el status al sentinel de dominio para que los llamadores usen
// errors.Is en lugar de inspeccionar códigos HTTP.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case http.StatusConflict:
		return domain.ErrDuplicate
	}
	if e.Status >= 500 {
		return domain.ErrUnavailable
	}
	return nil
}
