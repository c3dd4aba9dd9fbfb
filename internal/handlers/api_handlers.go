package handlers

import (
	"net/http"

	"tradeportal/internal/common"
	"tradeportal/internal/services"

	"github.com/labstack/echo/v4"
)

// APIHandlers serves the machine-to-machine trader API consumed by head
// office tooling. Auth is the x-api-key middleware, applied at routing time.
type APIHandlers struct {
	traderService services.TraderService
}

func NewAPIHandlers(traderService services.TraderService) *APIHandlers {
	return &APIHandlers{traderService: traderService}
}

// GetTraders handles GET /api/traders/:branchId
func (h *APIHandlers) GetTraders(c echo.Context) error {
	branchID, err := common.ValidateBranchID(c.Param("branchId"))
	if err != nil {
		return common.SendValidationError(c, "branchId", err.Error())
	}
	traders, err := h.traderService.List(c.Request().Context(), branchID)
	if err != nil {
		return common.SendServerError(c, "Failed to get traders")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"branchId": branchID,
		"count":    len(traders),
		"traders":  traders,
	})
}
