package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"fnp-marketplace/logger"
	"fnp-marketplace/models"
	"fnp-marketplace/pricing"
	"fnp-marketplace/repository"
	"fnp-marketplace/service"
)

// JSON writes v with the given status
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorf("❌ Error encoding response: %v", err)
	}
}

// Error writes {"error": message}
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, models.ErrorResponse{Error: message})
}

// FromError maps a service or repository error to its HTTP status.
// Unknown errors are logged and reported as 500 without their details.
func FromError(w http.ResponseWriter, handler string, err error) {
	if ve, ok := models.AsValidationError(err); ok {
		JSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "validation failed", Fields: ve.Fields})
		return
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrConflict):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, pricing.ErrUnknownCategory),
		errors.Is(err, pricing.ErrUnknownGrade),
		errors.Is(err, pricing.ErrUnknownPriceType),
		errors.Is(err, pricing.ErrInvalidBulkValue),
		errors.Is(err, pricing.ErrNegativePrice),
		errors.Is(err, service.ErrUnsupportedImage):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrBanned):
		Error(w, http.StatusForbidden, err.Error())
	default:
		logger.Log.Errorf("❌ %s: %v", handler, err)
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}
