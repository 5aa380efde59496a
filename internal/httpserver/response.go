package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/service/auth"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/validation"
)

type errorBody struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, message string, details map[string]string) {
	c.JSON(status, gin.H{"success": false, "error": errorBody{Message: message, Details: details}})
}

// respondDomainError maps the service error taxonomy onto HTTP statuses.
// Unknown errors become an opaque 500; the handler is expected to have
// logged the cause.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, domain.ErrAlreadyExists):
		respondError(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrIdentityResolution),
		errors.Is(err, domain.ErrAddressResolution):
		respondError(c, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, domain.ErrProductUnavailable):
		respondError(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		respondError(c, http.StatusUnauthorized, err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal error", nil)
	}
}

func respondBindingError(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
}
