package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	lifecycleuc "microlend-backend/internal/usecase/lifecycle"
)

type LifecycleHandler struct{ uc *lifecycleuc.Usecase }

func NewLifecycleHandler(uc *lifecycleuc.Usecase) *LifecycleHandler {
	return &LifecycleHandler{uc: uc}
}

type decisionReq struct {
	StaffID string `json:"staff_id" validate:"required,hex32"`
}

type decisionResp struct {
	LoanID  string `json:"loan_id"`
	Applied bool   `json:"applied"`
}

func (h *LifecycleHandler) Approve(c echo.Context) error {
	var req decisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	loanID := c.Param("loan_id")
	ok, err := h.uc.Approve(c.Request().Context(), loanID, req.StaffID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, decisionResp{LoanID: loanID, Applied: ok})
}

func (h *LifecycleHandler) Reject(c echo.Context) error {
	var req decisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	loanID := c.Param("loan_id")
	ok, err := h.uc.Reject(c.Request().Context(), loanID, req.StaffID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, decisionResp{LoanID: loanID, Applied: ok})
}
