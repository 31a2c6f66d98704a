package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promotora-credito/app-cadastro/internal/middleware"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/services"
	"github.com/promotora-credito/app-cadastro/internal/utils"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error         string                `json:"error"`
	Notifications []models.Notification `json:"notifications,omitempty"`
}

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	var apiErr *services.APIError
	switch {
	case errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrSectionsNotFound),
		errors.Is(err, models.ErrCEPNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrStaleResponse),
		errors.Is(err, models.ErrFieldLocked),
		errors.Is(err, models.ErrPathConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidPath),
		errors.Is(err, models.ErrUnknownSection),
		errors.Is(err, models.ErrUnknownOptionList),
		errors.Is(err, models.ErrUnsupportedFieldType),
		errors.Is(err, models.ErrClientIDRequired),
		errors.Is(err, models.ErrInvalidWizardMode),
		errors.Is(err, models.ErrInvalidCEP):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.As(err, &apiErr):
		if apiErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes err with its status and the matching error notification
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	} else if status == http.StatusBadGateway || status == http.StatusNotFound {
		message = services.ErrorMessage(err)
	}
	c.JSON(status, ErrorResponse{
		Error:         message,
		Notifications: []models.Notification{{Level: models.NotificationError, Message: message}},
	})
}

// bindError answers a request whose body or parameters could not be read
func bindError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:         message,
		Notifications: []models.Notification{{Level: models.NotificationError, Message: message}},
	})
}

func callerFrom(c *gin.Context) services.Caller {
	return services.Caller{
		Token: middleware.BearerToken(c),
		Audit: utils.GetAuditContextFromGin(c),
	}
}
