// README: Admin driver handlers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tvirti/internal/modules/driver"
	"tvirti/internal/modules/pricing"
	"tvirti/internal/types"
)

type DriverHandler struct {
	drivers *driver.Service
}

func NewDriverHandler(drivers *driver.Service) *DriverHandler {
	return &DriverHandler{drivers: drivers}
}

type driverReq struct {
	Name        *string            `json:"name"`
	Phone       *string            `json:"phone"`
	Service     *string            `json:"service"`
	SubTypes    *[]pricing.SubType `json:"subTypes"`
	Base        *types.Point       `json:"base"`
	DeviceToken *string            `json:"deviceToken"`
	Active      *bool              `json:"active"`
}

func (r driverReq) service() (*pricing.ServiceType, error) {
	if r.Service == nil {
		return nil, nil
	}
	s, err := pricing.ParseService(*r.Service)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func (h *DriverHandler) Create(c *gin.Context) {
	var req driverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	svc, err := req.service()
	if err != nil {
		writeDriverError(c, err)
		return
	}
	if svc == nil {
		writeError(c, http.StatusBadRequest, "service is required")
		return
	}
	cmd := driver.CreateCommand{
		Name:        deref(req.Name),
		Phone:       deref(req.Phone),
		Service:     *svc,
		Base:        req.Base,
		DeviceToken: deref(req.DeviceToken),
		Active:      req.Active,
	}
	if req.SubTypes != nil {
		cmd.SubTypes = *req.SubTypes
	}
	d, err := h.drivers.Create(c.Request.Context(), cmd)
	if err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, d)
}

func (h *DriverHandler) List(c *gin.Context) {
	var f driver.Filter
	if v := c.Query("service"); v != "" {
		s, err := pricing.ParseService(v)
		if err != nil {
			writeDriverError(c, err)
			return
		}
		f.Service = s
	}
	if v := c.Query("active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid active flag")
			return
		}
		f.ActiveOnly = b
	}
	drivers, err := h.drivers.List(c.Request.Context(), f)
	if err != nil {
		writeDriverError(c, err)
		return
	}
	if drivers == nil {
		drivers = []*driver.Driver{}
	}
	writeJSON(c, http.StatusOK, gin.H{"drivers": drivers})
}

func (h *DriverHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, err := h.drivers.Get(c.Request.Context(), id)
	if err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

func (h *DriverHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req driverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	svc, err := req.service()
	if err != nil {
		writeDriverError(c, err)
		return
	}
	d, err := h.drivers.Update(c.Request.Context(), driver.UpdateCommand{
		ID:          id,
		Name:        req.Name,
		Phone:       req.Phone,
		Service:     svc,
		SubTypes:    req.SubTypes,
		Base:        req.Base,
		DeviceToken: req.DeviceToken,
		Active:      req.Active,
	})
	if err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

func (h *DriverHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.drivers.Delete(c.Request.Context(), id); err != nil {
		writeDriverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
