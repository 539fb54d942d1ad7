package main

import (
	"errors"
	"net/http"

	"bitbucket.org/ksar/surveillance_backend/config"
	"bitbucket.org/ksar/surveillance_backend/models"
	"bitbucket.org/ksar/surveillance_backend/surveillance"
	"bitbucket.org/ksar/surveillance_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps domain errors onto status codes. Anything unknown is a
// 500 and is attached to the gin context for customErrorLogger.
func respondError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": utils.ProcessValidationErrors(err)})
	case errors.Is(err, utils.ErrorInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrFactRejected):
		body := gin.H{"error": err.Error()}
		if ie, ok := surveillance.AsIntegrityError(err); ok {
			body["violation"] = integrityDetails(ie)
		}
		c.JSON(http.StatusConflict, body)
	case errors.Is(err, utils.ErrorLockNotObtained):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrorServiceNotReady):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrStoreInconsistent):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": models.ErrStoreInconsistent.Error()})
	case errors.Is(err, config.ErrAppendOnlyFact):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func integrityDetails(ie *surveillance.IntegrityError) gin.H {
	details := gin.H{"kind": ie.Kind()}
	if ie.PlacementID != 0 {
		details["placement_id"] = ie.PlacementID
	}
	if ie.ContainerSystemID != 0 {
		details["container_system_id"] = ie.ContainerSystemID
	}
	if len(ie.LoadIDs) > 0 {
		details["load_ids"] = ie.LoadIDs
	}
	if ie.ExtractID != 0 {
		details["extract_id"] = ie.ExtractID
	}
	if ie.Detail != "" {
		details["detail"] = ie.Detail
	}
	return details
}
