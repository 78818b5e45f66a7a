package billing

import (
	"errors"
	"net/http"
)

// Taxonomía de errores del flujo de facturación. Los handlers HTTP traducen
// cada clase a un código con HTTPStatus.
var (
	ErrValidation          = errors.New("invalid billing request")
	ErrAuth                = errors.New("missing or invalid identity")
	ErrNotFound            = errors.New("unknown user or plan")
	ErrConfiguration       = errors.New("billing configuration missing")
	ErrProvider            = errors.New("payment provider call failed")
	ErrSignature           = errors.New("webhook signature verification failed")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

// HTTPStatus devuelve el código HTTP asociado a un error de facturación
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrSignature):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInsufficientCredits):
		return http.StatusPaymentRequired
	case errors.Is(err, ErrConfiguration), errors.Is(err, ErrProvider):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
