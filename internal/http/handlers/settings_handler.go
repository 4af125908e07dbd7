// README: Pricing settings handlers (public snapshot, admin read/write).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tvirti/internal/modules/pricing"
)

type SettingsHandler struct {
	pricing *pricing.Service
}

func NewSettingsHandler(p *pricing.Service) *SettingsHandler {
	return &SettingsHandler{pricing: p}
}

// Prices returns the customer side of the effective price tables for the booking wizard.
func (h *SettingsHandler) Prices(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.pricing.Snapshot(c.Request.Context()).Customer())
}

type settingsResp struct {
	Effective pricing.Settings  `json:"effective"`
	Stored    pricing.Overrides `json:"stored"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	stored, err := h.pricing.StoredOverrides(ctx)
	if err != nil {
		writePricingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, settingsResp{Effective: h.pricing.Snapshot(ctx), Stored: stored})
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req pricing.Overrides
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	ctx := c.Request.Context()
	effective, err := h.pricing.UpdateSettings(ctx, req)
	if err != nil {
		writePricingError(c, err)
		return
	}
	stored, err := h.pricing.StoredOverrides(ctx)
	if err != nil {
		writePricingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, settingsResp{Effective: effective, Stored: stored})
}
