package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"convoyage-service/internal/http/middleware"
	"convoyage-service/internal/model"
	"convoyage-service/internal/service"
)

type Handler struct {
	missionService *service.MissionService
	pricingService *service.PricingService
	invoiceService *service.InvoiceService
	log            zerolog.Logger
}

func NewHandler(
	missionService *service.MissionService,
	pricingService *service.PricingService,
	invoiceService *service.InvoiceService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		missionService: missionService,
		pricingService: pricingService,
		invoiceService: invoiceService,
		log:            log,
	}
}

func (h *Handler) listMissions(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	opts, err := parseMissionQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	records, err := h.missionService.List(c.Request.Context(), principal, opts)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": records}))
}

func (h *Handler) getMission(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid mission id"))
		return
	}

	details, err := h.missionService.GetDetails(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(details))
}

func (h *Handler) createMission(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		ClientID        string   `json:"client_id"`
		PickupAddress   string   `json:"pickup_address" binding:"required"`
		PickupContact   string   `json:"pickup_contact"`
		DeliveryAddress string   `json:"delivery_address" binding:"required"`
		DeliveryContact string   `json:"delivery_contact"`
		VehicleBrand    string   `json:"vehicle_brand"`
		VehicleModel    string   `json:"vehicle_model"`
		VehiclePlate    string   `json:"vehicle_plate"`
		VehicleCategory string   `json:"vehicle_category" binding:"required"`
		DistanceKm      *float64 `json:"distance_km"`
		PickupLat       *float64 `json:"pickup_lat"`
		PickupLng       *float64 `json:"pickup_lng"`
		DeliveryLat     *float64 `json:"delivery_lat"`
		DeliveryLng     *float64 `json:"delivery_lng"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	clientID := principal.UserID
	if req.ClientID != "" {
		id, err := uuid.Parse(strings.TrimSpace(req.ClientID))
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid client_id"))
			return
		}
		clientID = id
	}

	input := service.CreateMissionInput{
		PickupAddress:   req.PickupAddress,
		PickupContact:   req.PickupContact,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryContact: req.DeliveryContact,
		VehicleBrand:    req.VehicleBrand,
		VehicleModel:    req.VehicleModel,
		VehiclePlate:    req.VehiclePlate,
		VehicleCategory: strings.ToLower(strings.TrimSpace(req.VehicleCategory)),
		DistanceKm:      req.DistanceKm,
		PickupLat:       req.PickupLat,
		PickupLng:       req.PickupLng,
		DeliveryLat:     req.DeliveryLat,
		DeliveryLng:     req.DeliveryLng,
	}

	record, err := h.missionService.Create(c.Request.Context(), principal, clientID, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(record))
}

func (h *Handler) updateMissionStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid mission id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	if err := h.missionService.UpdateStatus(c.Request.Context(), principal, id, req.Status, req.Note); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "updated"}))
}

func (h *Handler) cancelMission(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid mission id"))
		return
	}

	if err := h.missionService.CancelByClient(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "cancelled"}))
}

func (h *Handler) assignDriver(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid mission id"))
		return
	}

	var req struct {
		DriverID string `json:"driver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	driverID, err := uuid.Parse(strings.TrimSpace(req.DriverID))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid driver_id"))
		return
	}

	if err := h.missionService.AssignDriver(c.Request.Context(), principal, id, driverID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "assigned"}))
}

func (h *Handler) listInvoices(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	opts, err := parseInvoiceQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	invoices, err := h.invoiceService.List(c.Request.Context(), principal, opts)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": invoices}))
}

func (h *Handler) getInvoice(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid invoice id"))
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(invoice))
}

func (h *Handler) generateInvoice(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	missionID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid mission id"))
		return
	}

	invoice, err := h.invoiceService.Generate(c.Request.Context(), principal, missionID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(invoice))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch err {
	case service.ErrPermissionDenied:
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case service.ErrInvalidInput:
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case service.ErrNotFound:
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case service.ErrConflict:
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case service.ErrInvalidStatus:
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case model.ErrNegativeDistance, model.ErrUnknownCategory:
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func parseMissionQuery(c *gin.Context) (service.ListMissionsOptions, error) {
	var opts service.ListMissionsOptions

	if statusParam := c.Query("status"); statusParam != "" {
		for _, val := range splitCSV(statusParam) {
			status, ok := model.ParseMissionStatus(val)
			if !ok {
				continue
			}
			opts.Statuses = append(opts.Statuses, status)
		}
	}
	if categoryParam := c.Query("category"); categoryParam != "" {
		opts.Categories = append(opts.Categories, splitCSV(strings.ToLower(categoryParam))...)
	}
	if clientID := strings.TrimSpace(c.Query("client_id")); clientID != "" {
		id, err := uuid.Parse(clientID)
		if err != nil {
			return opts, err
		}
		opts.ClientID = &id
	}
	if driverID := strings.TrimSpace(c.Query("driver_id")); driverID != "" {
		id, err := uuid.Parse(driverID)
		if err != nil {
			return opts, err
		}
		opts.DriverID = &id
	}
	if dateFrom := strings.TrimSpace(c.Query("date_from")); dateFrom != "" {
		ts, err := time.Parse(time.RFC3339, dateFrom)
		if err != nil {
			return opts, err
		}
		opts.DateFrom = &ts
	}
	if dateTo := strings.TrimSpace(c.Query("date_to")); dateTo != "" {
		ts, err := time.Parse(time.RFC3339, dateTo)
		if err != nil {
			return opts, err
		}
		opts.DateTo = &ts
	}
	if limit := strings.TrimSpace(c.Query("limit")); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil {
			opts.Limit = v
		}
	}
	if offset := strings.TrimSpace(c.Query("offset")); offset != "" {
		if v, err := strconv.Atoi(offset); err == nil {
			opts.Offset = v
		}
	}

	opts.Search = strings.TrimSpace(c.Query("search"))

	return opts, nil
}

func parseInvoiceQuery(c *gin.Context) (service.InvoiceListOptions, error) {
	var opts service.InvoiceListOptions

	if dateFrom := strings.TrimSpace(c.Query("date_from")); dateFrom != "" {
		ts, err := time.Parse(time.RFC3339, dateFrom)
		if err != nil {
			return opts, err
		}
		opts.DateFrom = &ts
	}
	if dateTo := strings.TrimSpace(c.Query("date_to")); dateTo != "" {
		ts, err := time.Parse(time.RFC3339, dateTo)
		if err != nil {
			return opts, err
		}
		opts.DateTo = &ts
	}
	if limit := strings.TrimSpace(c.Query("limit")); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil {
			opts.Limit = v
		}
	}
	if offset := strings.TrimSpace(c.Query("offset")); offset != "" {
		if v, err := strconv.Atoi(offset); err == nil {
			opts.Offset = v
		}
	}
	return opts, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
