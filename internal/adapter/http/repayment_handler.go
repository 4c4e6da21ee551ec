package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	repaymentuc "microlend-backend/internal/usecase/repayment"
)

type RepaymentHandler struct{ uc *repaymentuc.Usecase }

func NewRepaymentHandler(uc *repaymentuc.Usecase) *RepaymentHandler {
	return &RepaymentHandler{uc: uc}
}

type makeRepaymentReq struct {
	BorrowerID string  `json:"borrower_id" validate:"required,hex32"`
	Amount     float64 `json:"amount" validate:"required,gt=0,dec2"`
}

func (h *RepaymentHandler) Make(c echo.Context) error {
	var req makeRepaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	view, err := h.uc.Make(c.Request().Context(), req.BorrowerID, c.Param("loan_id"), req.Amount)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

func (h *RepaymentHandler) List(c echo.Context) error {
	views, err := h.uc.List(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}
