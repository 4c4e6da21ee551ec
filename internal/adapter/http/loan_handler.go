package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	domainLoan "microlend-backend/internal/domain/loan"
	loanuc "microlend-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loanuc.Usecase }

func NewLoanHandler(uc *loanuc.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type applyLoanReq struct {
	BorrowerID        string  `json:"borrower_id" validate:"required,hex32"`
	Amount            float64 `json:"amount" validate:"required,gt=0,dec2"`
	TermMonths        int     `json:"term_months" validate:"required,gte=1"`
	Purpose           string  `json:"purpose" validate:"required"`
	Method            string  `json:"application_method" validate:"required,oneof=online in_person"`
	DateOfBirth       string  `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	GrossIncome       float64 `json:"gross_monthly_income" validate:"gte=0,dec2"`
	NetIncome         float64 `json:"net_monthly_income" validate:"gte=0,dec2"`
	SpouseIncome      float64 `json:"spouse_income" validate:"gte=0,dec2"`
	RentOrBond        float64 `json:"rent_or_bond" validate:"gte=0,dec2"`
	LivingExpenses    float64 `json:"living_expenses" validate:"gte=0,dec2"`
	DebtObligations   float64 `json:"debt_obligations" validate:"gte=0,dec2"`
	Insurance         float64 `json:"insurance_premiums" validate:"gte=0,dec2"`
	OtherExpenses     float64 `json:"other_expenses" validate:"gte=0,dec2"`
	Dependents        int     `json:"dependents" validate:"gte=0"`
	DocumentsVerified bool    `json:"documents_verified"`
	LifeCoverConsent  bool    `json:"life_cover_consent"`
}

func (h *LoanHandler) Apply(c echo.Context) error {
	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dob, _ := time.Parse("2006-01-02", req.DateOfBirth)

	view, err := h.uc.Apply(c.Request().Context(), req.BorrowerID, loanuc.ApplyInput{
		Amount:            req.Amount,
		TermMonths:        req.TermMonths,
		Purpose:           req.Purpose,
		Method:            domainLoan.Method(req.Method),
		DateOfBirth:       dob,
		GrossIncome:       req.GrossIncome,
		NetIncome:         req.NetIncome,
		SpouseIncome:      req.SpouseIncome,
		RentOrBond:        req.RentOrBond,
		LivingExpenses:    req.LivingExpenses,
		DebtObligations:   req.DebtObligations,
		Insurance:         req.Insurance,
		OtherExpenses:     req.OtherExpenses,
		Dependents:        req.Dependents,
		DocumentsVerified: req.DocumentsVerified,
		LifeCoverConsent:  req.LifeCoverConsent,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

func (h *LoanHandler) Get(c echo.Context) error {
	view, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *LoanHandler) ListForBorrower(c echo.Context) error {
	views, err := h.uc.ListForBorrower(c.Request().Context(), c.Param("borrower_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *LoanHandler) ListAll(c echo.Context) error {
	views, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}
