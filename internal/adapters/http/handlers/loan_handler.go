package handlers

import (
	"errors"

	"coopfund/internal/core/domain"
	"coopfund/internal/core/services"
	"coopfund/internal/pkg/response"
	"coopfund/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService  *services.LoanService
	statsService *services.StatsService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService, statsService *services.StatsService) *LoanHandler {
	return &LoanHandler{
		loanService:  loanService,
		statsService: statsService,
	}
}

// List lists loans. With no status filter, returns open (approved and
// active) loans.
func (h *LoanHandler) List(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		loans, err := h.loanService.ListByStatus(c.Context(), domain.LoanStatus(status))
		if err != nil {
			if errors.Is(err, domain.ErrInvalidLoanStatus) {
				return response.BadRequest(c, "Invalid loan status")
			}
			return response.InternalServerError(c, "Failed to list loans")
		}
		return response.Success(c, "Loans retrieved successfully", loans)
	}

	loans, err := h.loanService.ListOpen(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}
	return response.Success(c, "Loans retrieved successfully", loans)
}

// Stats returns the loan dashboard aggregate
func (h *LoanHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.statsService.GetLoanStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get loan stats")
	}
	return response.Success(c, "Loan stats retrieved successfully", stats)
}

// Get gets a loan by ID
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to get loan")
	}
	return response.Success(c, "Loan retrieved successfully", loan)
}

// ListByMember lists a member's loans
func (h *LoanHandler) ListByMember(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("memberId")
	if err != nil || memberID < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	loans, err := h.loanService.ListByMember(c.Context(), uint(memberID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}
	return response.Success(c, "Loans retrieved successfully", loans)
}

// Create stores a loan application
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var input services.CreateLoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.ValidationFailed(c, validate.Message(err), validate.Fields(err))
	}

	loan, err := h.loanService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be greater than zero")
		case errors.Is(err, domain.ErrInvalidInterest):
			return response.BadRequest(c, "Interest rate must not be negative")
		case errors.Is(err, domain.ErrInvalidLoanTerm):
			return response.BadRequest(c, "Term must be at least one month")
		case errors.Is(err, domain.ErrInvalidLoanStatus):
			return response.BadRequest(c, "Invalid loan status")
		default:
			return response.InternalServerError(c, "Failed to create loan")
		}
	}
	return response.Created(c, "Loan created successfully", loan)
}

// Update applies a partial update to a loan
func (h *LoanHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var input services.UpdateLoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrInvalidLoanStatus):
			return response.BadRequest(c, "Invalid loan status")
		default:
			return response.InternalServerError(c, "Failed to update loan")
		}
	}
	return response.Success(c, "Loan updated successfully", loan)
}
