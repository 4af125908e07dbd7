// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tvirti/internal/modules/driver"
	"tvirti/internal/modules/order"
	"tvirti/internal/modules/pricing"
	"tvirti/internal/modules/vehicle"
	"tvirti/internal/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidID ensures IDs match the UUIDs produced by types.NewID.
func isValidID(v string) bool {
	return types.ID(v).Valid()
}

func pathID(c *gin.Context) (types.ID, bool) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid id")
		return "", false
	}
	return types.ID(id), true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeInternal(c *gin.Context, err error) {
	log.Printf("[http] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	writeError(c, http.StatusInternalServerError, "internal error")
}

// isPricingInputError reports errors caused by the request, not by the server.
func isPricingInputError(err error) bool {
	return errors.Is(err, pricing.ErrUnknownService) ||
		errors.Is(err, pricing.ErrUnknownSubType) ||
		errors.Is(err, pricing.ErrUnknownFloorRange) ||
		errors.Is(err, pricing.ErrInvalidDistance) ||
		errors.Is(err, pricing.ErrNotDistancePriced) ||
		errors.Is(err, vehicle.ErrUnknownCategory)
}

func writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrBadRequest), isPricingInputError(err):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrNotFound), errors.Is(err, driver.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrInvalidState), errors.Is(err, order.ErrConflict), errors.Is(err, order.ErrDriverUnavailable):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeInternal(c, err)
	}
}

func writeDriverError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, driver.ErrBadRequest), isPricingInputError(err):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, driver.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeInternal(c, err)
	}
}

func writePricingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrInvalidSettings), isPricingInputError(err):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, pricing.ErrSettingsReadOnly):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		writeInternal(c, err)
	}
}
