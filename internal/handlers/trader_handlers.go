package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tradeportal/internal/common"
	"tradeportal/internal/importer"
	"tradeportal/internal/models"
	"tradeportal/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraderHandlers handles the portal's trader routes: CRUD, bulk delete, CSV
// import/export and the financial bulk update.
type TraderHandlers struct {
	traderService services.TraderService
	importService services.ImportService
	exportService services.ExportService
}

func NewTraderHandlers(traderService services.TraderService, importService services.ImportService, exportService services.ExportService) *TraderHandlers {
	return &TraderHandlers{
		traderService: traderService,
		importService: importService,
		exportService: exportService,
	}
}

type traderRequest struct {
	Name                   string  `json:"name"`
	Status                 string  `json:"status"`
	CallBackDate           *string `json:"callBackDate"`
	Phone                  *string `json:"phone"`
	Website                *string `json:"website"`
	Address                *string `json:"address"`
	OwnerName              *string `json:"ownerName"`
	OwnerProfileLink       *string `json:"ownerProfileLink"`
	MainCategory           *string `json:"mainCategory"`
	Categories             *string `json:"categories"`
	WorkdayTiming          *string `json:"workdayTiming"`
	TotalAssets            *string `json:"totalAssets"`
	EstimatedAnnualRevenue *string `json:"estimatedAnnualRevenue"`
	EstimatedCompanyValue  *string `json:"estimatedCompanyValue"`
	EmployeeCount          *string `json:"employeeCount"`
	Description            *string `json:"description"`
	Notes                  *string `json:"notes"`
	Reviews                *string `json:"reviews"`
	Rating                 *string `json:"rating"`
}

func (req *traderRequest) toModel() (*models.Trader, error) {
	t := &models.Trader{
		Name:                   req.Name,
		Status:                 req.Status,
		Phone:                  req.Phone,
		Website:                req.Website,
		Address:                req.Address,
		OwnerName:              req.OwnerName,
		OwnerProfileLink:       req.OwnerProfileLink,
		MainCategory:           req.MainCategory,
		Categories:             req.Categories,
		WorkdayTiming:          req.WorkdayTiming,
		TotalAssets:            req.TotalAssets,
		EstimatedAnnualRevenue: req.EstimatedAnnualRevenue,
		EstimatedCompanyValue:  req.EstimatedCompanyValue,
		EmployeeCount:          req.EmployeeCount,
		Description:            req.Description,
		Notes:                  req.Notes,
		Reviews:                req.Reviews,
		Rating:                 req.Rating,
	}
	if req.CallBackDate != nil && *req.CallBackDate != "" {
		parsed, err := time.Parse(time.RFC3339, *req.CallBackDate)
		if err != nil {
			return nil, fmt.Errorf("callBackDate must be RFC3339")
		}
		t.CallBackDate = &parsed
	}
	return t, nil
}

func branchParam(c echo.Context) (string, error) {
	return common.ValidateBranchID(c.Param("branchId"))
}

// ListTraders handles GET /branches/:branchId/traders
func (h *TraderHandlers) ListTraders(c echo.Context) error {
	branchID, err := branchParam(c)
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

// GetTrader handles GET /branches/:branchId/traders/:id
func (h *TraderHandlers) GetTrader(c echo.Context) error {
	branchID, err := branchParam(c)
	if err != nil {
		return common.SendValidationError(c, "branchId", err.Error())
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "invalid trader id")
	}
	trader, err := h.traderService.Get(c.Request().Context(), branchID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Trader")
	}
	return c.JSON(http.StatusOK, trader)
}

// CreateTrader handles POST /branches/:branchId/traders
func (h *TraderHandlers) CreateTrader(c echo.Context) error {
	branchID, err := branchParam(c)
	if err != nil {
		return common.SendValidationError(c, "branchId", err.Error())
	}
	var req traderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	trader, err := req.toModel()
	if err != nil {
		return common.SendValidationError(c, "callBackDate", err.Error())
	}
	view, err := h.traderService.Create(c.Request().Context(), branchID, trader)
	if err != nil {
		if errors.Is(err, services.ErrPhoneExists) {
			return c.JSON(http.StatusConflict, common.CreateErrorResponse("DUPLICATE_PHONE", err.Error(), nil))
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, view)
}

// UpdateTrader handles PUT /branches/:branchId/traders/:id
func (h *TraderHandlers) UpdateTrader(c echo.Context) error {
	branchID, err := branchParam(c)
	if err != nil {
		return common.SendValidationError(c, "branchId", err.Error())
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "invalid trader id")
	}
	var req traderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	trader, err := req.toModel()
	if err != nil {
		return common.SendValidationError(c, "callBackDate", err.Error())
	}
	trader.ID = id
	view, err := h.traderService.Update(c.Request().Context(), branchID, trader)
	if err != nil {
		if errors.Is(err, services.ErrPhoneExists) {
			return c.JSON(http.StatusConflict, common.CreateErrorResponse("DUPLICATE_PHONE", err.Error(), nil))
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// DeleteTrader handles DELETE /branches/:branchId/traders/:id
func (h *TraderHandlers) DeleteTrader(c echo.Context) error {
	branchID, err := branchParam(c)
	if err != nil {
		return common.SendValidationError(c, "branchId", err.Error())
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "invalid trader id")
	}
	if err := h.traderService.Delete(c.Request().Context(), branchID, id); err != nil {
		return common.SendServerError(c, "Failed to delete trader")
	}
	return c.NoContent(http.StatusNoContent)
}

// BulkDeleteTraders handles POST /branches/:branchId/traders/bulk/delete.
// The response always carries counts so a partially failed request is never
// reported as a plain success or a plain failure.
func (h *TraderHandlers) BulkDeleteTraders(c echo.Context) error {
	branchID, err := branchParam(c)
	if err != nil {
		return common.SendValidationError(c, "branchId", err.Error())
	}
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if len(req.IDs) == 0 {
		return common.SendValidationError(c, "ids", "at least one trader id is required")
	}
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return common.SendValidationError(c, "ids", fmt.Sprintf("invalid trader id %q", raw))
		}
		ids = append(ids, id)
	}
	result := h.traderService.BulkDelete(c.Request().Context(), branchID, ids)
	return c.JSON(http.StatusOK, result)
}

// ImportTraders handles POST /branches/:branchId/traders/import with a
// multipart "file" field containing the CSV upload.
func (h *TraderHandlers) ImportTraders(c echo.Context) error {
	branchID, err := branchParam(c)
	if err != nil {
		return common.SendValidationError(c, "branchId", err.Error())
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendValidationError(c, "file", "a CSV file upload is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read upload")
	}
	defer file.Close()

	result, err := h.importService.ImportTraders(c.Request().Context(), branchID, fileHeader.Filename, file)
	if err != nil {
		var pe *importer.ParseError
		switch {
		case errors.Is(err, importer.ErrRowLimitExceeded), errors.Is(err, importer.ErrEmptyUpload):
			return common.SendValidationError(c, "file", err.Error())
		case errors.As(err, &pe):
			return common.SendValidationError(c, "file", pe.Error())
		default:
			return common.SendServerError(c, "Import failed")
		}
	}
	return c.JSON(http.StatusOK, result)
}

// FinancialBulkUpdate handles POST /branches/:branchId/traders/financials
// with a multipart "file" field; rows are matched by exact trader name.
func (h *TraderHandlers) FinancialBulkUpdate(c echo.Context) error {
	branchID, err := branchParam(c)
	if err != nil {
		return common.SendValidationError(c, "branchId", err.Error())
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendValidationError(c, "file", "a CSV file upload is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read upload")
	}
	defer file.Close()

	result, err := h.importService.FinancialBulkUpdate(c.Request().Context(), branchID, file)
	if err != nil {
		var pe *importer.ParseError
		switch {
		case errors.Is(err, importer.ErrRowLimitExceeded), errors.Is(err, importer.ErrEmptyUpload):
			return common.SendValidationError(c, "file", err.Error())
		case errors.As(err, &pe):
			return common.SendValidationError(c, "file", pe.Error())
		default:
			return common.SendServerError(c, "Financial update failed")
		}
	}
	return c.JSON(http.StatusOK, result)
}

// ExportTraders handles GET /branches/:branchId/traders/export and serves
// the branch's current trader list as a CSV download. The CSV is rendered
// into a buffer first so a failed read still gets an error response instead
// of a committed 200 with a truncated body.
func (h *TraderHandlers) ExportTraders(c echo.Context) error {
	branchID, err := branchParam(c)
	if err != nil {
		return common.SendValidationError(c, "branchId", err.Error())
	}
	var buf bytes.Buffer
	if err := h.exportService.ExportTraders(c.Request().Context(), branchID, &buf); err != nil {
		return common.SendServerError(c, "Failed to export traders")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="traders-%s.csv"`, branchID))
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
