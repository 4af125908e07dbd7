// README: Evacuator questionnaire handlers used by the booking wizard.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tvirti/internal/modules/vehicle"
)

type VehicleHandler struct{}

func NewVehicleHandler() *VehicleHandler {
	return &VehicleHandler{}
}

type questionnaire struct {
	Category  vehicle.Category   `json:"category"`
	Questions []vehicle.Question `json:"questions"`
}

// Questions returns the questions for one category, or for all of them.
func (h *VehicleHandler) Questions(c *gin.Context) {
	categories := vehicle.Categories
	if v := strings.TrimSpace(c.Query("category")); v != "" {
		cat, err := vehicle.ParseCategory(v)
		if err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		categories = []vehicle.Category{cat}
	}
	out := make([]questionnaire, 0, len(categories))
	for _, cat := range categories {
		qs, err := vehicle.Questions(cat)
		if err != nil {
			writeInternal(c, err)
			return
		}
		out = append(out, questionnaire{Category: cat, Questions: qs})
	}
	writeJSON(c, http.StatusOK, gin.H{"categories": out})
}

type classifyReq struct {
	Category string          `json:"category" binding:"required"`
	Answers  vehicle.Answers `json:"answers"`
}

func (h *VehicleHandler) Classify(c *gin.Context) {
	var req classifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cat, err := vehicle.ParseCategory(req.Category)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	t, err := vehicle.Classify(cat, req.Answers)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"category": cat, "serviceVehicleType": t})
}
