package handlers

import (
	"errors"

	"coopfund/internal/core/domain"
	"coopfund/internal/core/services"
	"coopfund/internal/pkg/response"
	"coopfund/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// DividendHandler handles dividend and distribution endpoints
type DividendHandler struct {
	dividendService *services.DividendService
}

// NewDividendHandler creates a new dividend handler
func NewDividendHandler(dividendService *services.DividendService) *DividendHandler {
	return &DividendHandler{dividendService: dividendService}
}

// List lists all dividend periods
func (h *DividendHandler) List(c *fiber.Ctx) error {
	dividends, err := h.dividendService.ListDividends(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list dividends")
	}
	return response.Success(c, "Dividends retrieved successfully", dividends)
}

// Latest gets the most recently distributed dividend
func (h *DividendHandler) Latest(c *fiber.Ctx) error {
	dividend, err := h.dividendService.GetLatestDividend(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrDividendNotFound) {
			return response.NotFound(c, "No dividends found")
		}
		return response.InternalServerError(c, "Failed to get latest dividend")
	}
	return response.Success(c, "Dividend retrieved successfully", dividend)
}

// Get gets a dividend by ID
func (h *DividendHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid dividend ID")
	}

	dividend, err := h.dividendService.GetDividend(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrDividendNotFound) {
			return response.NotFound(c, "Dividend not found")
		}
		return response.InternalServerError(c, "Failed to get dividend")
	}
	return response.Success(c, "Dividend retrieved successfully", dividend)
}

// Create stores a new dividend period
func (h *DividendHandler) Create(c *fiber.Ctx) error {
	var input services.CreateDividendInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.ValidationFailed(c, validate.Message(err), validate.Fields(err))
	}

	dividend, err := h.dividendService.CreateDividend(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Total amount must be greater than zero")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Month must be between 1 and 12")
		default:
			return response.InternalServerError(c, "Failed to create dividend")
		}
	}
	return response.Created(c, "Dividend created successfully", dividend)
}

// ListDistributions lists the per-member shares of a dividend
func (h *DividendHandler) ListDistributions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid dividend ID")
	}

	dists, err := h.dividendService.ListDistributionsByDividend(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to list distributions")
	}
	return response.Success(c, "Distributions retrieved successfully", dists)
}

// ListDistributionsByMember lists a member's dividend shares
func (h *DividendHandler) ListDistributionsByMember(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("memberId")
	if err != nil || memberID < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	dists, err := h.dividendService.ListDistributionsByMember(c.Context(), uint(memberID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list distributions")
	}
	return response.Success(c, "Distributions retrieved successfully", dists)
}

// CreateDistribution stores a member's dividend share
func (h *DividendHandler) CreateDistribution(c *fiber.Ctx) error {
	var input services.CreateDistributionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.ValidationFailed(c, validate.Message(err), validate.Fields(err))
	}

	dist, err := h.dividendService.CreateDistribution(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDividendNotFound):
			return response.NotFound(c, "Dividend not found")
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be greater than zero")
		case errors.Is(err, domain.ErrInvalidDistributionStatus):
			return response.BadRequest(c, "Invalid distribution status")
		default:
			return response.InternalServerError(c, "Failed to create distribution")
		}
	}
	return response.Created(c, "Distribution created successfully", dist)
}

// GenerateDistributions splits a dividend across active members pro-rata by
// savings balance
func (h *DividendHandler) GenerateDistributions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid dividend ID")
	}

	dists, err := h.dividendService.GenerateDistributions(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDividendNotFound):
			return response.NotFound(c, "Dividend not found")
		case errors.Is(err, domain.ErrNoEligibleMembers):
			return response.BadRequest(c, "No active members to distribute to")
		default:
			return response.InternalServerError(c, "Failed to generate distributions")
		}
	}
	return response.Created(c, "Distributions generated successfully", dists)
}
