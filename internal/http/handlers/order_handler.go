// README: Order handlers: public quote/booking and admin order management.
package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tvirti/internal/http/middleware"
	"tvirti/internal/modules/driver"
	"tvirti/internal/modules/order"
	"tvirti/internal/modules/pricing"
	"tvirti/internal/modules/vehicle"
	"tvirti/internal/types"
)

type OrderHandler struct {
	orders  *order.Service
	drivers *driver.Service
}

func NewOrderHandler(orders *order.Service, drivers *driver.Service) *OrderHandler {
	return &OrderHandler{orders: orders, drivers: drivers}
}

type orderReq struct {
	Service         string          `json:"service"`
	SubType         string          `json:"subType"`
	VehicleCategory string          `json:"vehicleCategory"`
	Answers         vehicle.Answers `json:"answers"`
	CraneDuration   string          `json:"craneDuration"`
	FloorRange      string          `json:"floorRange"`
	Pickup          types.Location  `json:"pickup"`
	Dropoff         *types.Location `json:"dropoff"`
	DistanceKm      *float64        `json:"distanceKm"`
	ScheduledAt     *time.Time      `json:"scheduledAt"`
	Customer        order.Customer  `json:"customer"`
	Comment         string          `json:"comment"`
}

func upper(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

func (r orderReq) command() (order.CreateCommand, error) {
	service, err := pricing.ParseService(r.Service)
	if err != nil {
		return order.CreateCommand{}, err
	}
	var category vehicle.Category
	if strings.TrimSpace(r.VehicleCategory) != "" {
		if category, err = vehicle.ParseCategory(r.VehicleCategory); err != nil {
			return order.CreateCommand{}, err
		}
	}
	return order.CreateCommand{
		Service:       service,
		SubType:       pricing.SubType(upper(r.SubType)),
		Category:      category,
		Answers:       r.Answers,
		CraneDuration: pricing.CraneDuration(upper(r.CraneDuration)),
		FloorRange:    pricing.FloorRange(upper(r.FloorRange)),
		Pickup:        r.Pickup,
		Dropoff:       r.Dropoff,
		DistanceKm:    r.DistanceKm,
		ScheduledAt:   r.ScheduledAt,
		Customer:      r.Customer,
		Comment:       r.Comment,
	}, nil
}

func (h *OrderHandler) bindOrder(c *gin.Context) (order.CreateCommand, bool) {
	var req orderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return order.CreateCommand{}, false
	}
	cmd, err := req.command()
	if err != nil {
		writeOrderError(c, err)
		return order.CreateCommand{}, false
	}
	return cmd, true
}

type quoteResp struct {
	Service         pricing.ServiceType `json:"service"`
	SubType         pricing.SubType     `json:"subType,omitempty"`
	VehicleCategory vehicle.Category    `json:"vehicleCategory,omitempty"`
	DistanceKm      float64             `json:"distanceKm"`
	DistanceSource  string              `json:"distanceSource,omitempty"`
	Quote           pricing.Breakdown   `json:"quote"`
	Price           types.Money         `json:"price"`
}

// Quote prices a booking request without creating an order.
func (h *OrderHandler) Quote(c *gin.Context) {
	cmd, ok := h.bindOrder(c)
	if !ok {
		return
	}
	o, b, err := h.orders.Quote(c.Request.Context(), cmd)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, quoteResp{
		Service:         o.Service,
		SubType:         o.SubType,
		VehicleCategory: o.Category,
		DistanceKm:      o.DistanceKm,
		DistanceSource:  string(o.DistanceSource),
		Quote:           b,
		Price:           o.Price(),
	})
}

func (h *OrderHandler) Create(c *gin.Context) {
	cmd, ok := h.bindOrder(c)
	if !ok {
		return
	}
	o, err := h.orders.Create(c.Request.Context(), cmd)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, o)
}

func (h *OrderHandler) List(c *gin.Context) {
	var f order.Filter
	if v := c.Query("status"); v != "" {
		s, ok := order.ParseStatus(v)
		if !ok {
			writeError(c, http.StatusBadRequest, "unknown status")
			return
		}
		f.Status = s
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		f.Limit = n
	}
	orders, err := h.orders.List(c.Request.Context(), f)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	writeJSON(c, http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	o, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, o)
}

type updateOrderReq struct {
	ScheduledAt   *time.Time `json:"scheduledAt"`
	Comment       *string    `json:"comment"`
	CustomerPrice *int64     `json:"customerPrice"`
	DriverPrice   *int64     `json:"driverPrice"`
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	o, err := h.orders.Update(c.Request.Context(), order.UpdateCommand{
		OrderID:       id,
		ScheduledAt:   req.ScheduledAt,
		Comment:       req.Comment,
		CustomerPrice: req.CustomerPrice,
		DriverPrice:   req.DriverPrice,
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, o)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		writeOrderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type assignReq struct {
	DriverID string `json:"driverId" binding:"required"`
}

func (h *OrderHandler) Assign(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil || !isValidID(req.DriverID) {
		writeError(c, http.StatusBadRequest, "missing or invalid driverId")
		return
	}
	o, err := h.orders.Assign(c.Request.Context(), order.AssignCommand{
		OrderID:  id,
		DriverID: types.ID(req.DriverID),
		ActorID:  middleware.CallerUID(c),
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, o)
}

type reasonReq struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (h *OrderHandler) Unassign(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	// The reason is optional; chunked bodies report ContentLength -1.
	var req reasonReq
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(c, http.StatusBadRequest, "invalid json")
			return
		}
	}
	o, err := h.orders.Unassign(c.Request.Context(), order.UnassignCommand{
		OrderID: id,
		ActorID: middleware.CallerUID(c),
		Reason:  req.Reason,
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, o)
}

func (h *OrderHandler) Transition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reasonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	to, ok := order.ParseStatus(req.Status)
	if !ok {
		writeError(c, http.StatusBadRequest, "unknown status")
		return
	}
	o, err := h.orders.Transition(c.Request.Context(), order.TransitionCommand{
		OrderID: id,
		To:      to,
		ActorID: middleware.CallerUID(c),
		Reason:  req.Reason,
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, o)
}

func (h *OrderHandler) Events(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	events, err := h.orders.Events(c.Request.Context(), id)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	if events == nil {
		events = []order.Event{}
	}
	writeJSON(c, http.StatusOK, gin.H{"events": events})
}

// Candidates lists drivers able to take the order, nearest home base first.
func (h *OrderHandler) Candidates(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	o, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	candidates, err := h.drivers.Candidates(c.Request.Context(), o.Service, o.SubType, o.Pickup.Point)
	if err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"candidates": candidates})
}
