package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"convoyage-service/internal/http/middleware"
	"convoyage-service/internal/model"
)

// quote backs the public quote wizard: category + distance in, HT/TTC out.
func (h *Handler) quote(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	if category == "" {
		c.JSON(http.StatusBadRequest, errorResponse("category is required"))
		return
	}

	distanceParam := strings.TrimSpace(c.Query("distance_km"))
	if distanceParam == "" {
		c.JSON(http.StatusBadRequest, errorResponse("distance_km is required"))
		return
	}
	distanceKm, err := strconv.ParseFloat(distanceParam, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid distance_km"))
		return
	}

	quote, err := h.pricingService.Quote(c.Request.Context(), category, distanceKm)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(quote))
}

func (h *Handler) listTranches(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(gin.H{"items": model.DistanceTranches}))
}

func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(gin.H{"items": model.VehicleCategories}))
}

func (h *Handler) getGrid(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}
	if !principal.IsAdmin() {
		c.JSON(http.StatusForbidden, errorResponse("permission denied"))
		return
	}

	views, err := h.pricingService.GridView(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": views}))
}

// GridCellPayload carries one edited cell. Exactly one of price_ht and
// price_ttc must be set; the paired field is derived server-side.
type GridCellPayload struct {
	TrancheID string  `json:"tranche_id" binding:"required"`
	PriceHT   *string `json:"price_ht"`
	PriceTTC  *string `json:"price_ttc"`
}

func (h *Handler) saveGrid(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}
	if !principal.IsAdmin() {
		c.JSON(http.StatusForbidden, errorResponse("permission denied"))
		return
	}

	categoryID := strings.ToLower(strings.TrimSpace(c.Param("category")))

	var req struct {
		Cells []GridCellPayload `json:"cells" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	session, err := h.pricingService.BeginEdit(c.Request.Context(), categoryID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	for _, cell := range req.Cells {
		switch {
		case cell.PriceHT != nil:
			value, err := decimal.NewFromString(*cell.PriceHT)
			if err != nil {
				c.JSON(http.StatusBadRequest, errorResponse("invalid price_ht for tranche "+cell.TrancheID))
				return
			}
			if err := session.SetPriceHT(cell.TrancheID, value); err != nil {
				h.handleError(c, err)
				return
			}
		case cell.PriceTTC != nil:
			value, err := decimal.NewFromString(*cell.PriceTTC)
			if err != nil {
				c.JSON(http.StatusBadRequest, errorResponse("invalid price_ttc for tranche "+cell.TrancheID))
				return
			}
			if err := session.SetPriceTTC(cell.TrancheID, value); err != nil {
				h.handleError(c, err)
				return
			}
		default:
			c.JSON(http.StatusBadRequest, errorResponse("cell requires price_ht or price_ttc"))
			return
		}
	}

	if err := h.pricingService.Commit(c.Request.Context(), session); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "saved"}))
}
