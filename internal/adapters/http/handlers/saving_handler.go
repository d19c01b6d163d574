package handlers

import (
	"errors"

	"coopfund/internal/core/domain"
	"coopfund/internal/core/services"
	"coopfund/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SavingHandler handles savings endpoints
type SavingHandler struct {
	memberService *services.MemberService
	statsService  *services.StatsService
}

// NewSavingHandler creates a new saving handler
func NewSavingHandler(memberService *services.MemberService, statsService *services.StatsService) *SavingHandler {
	return &SavingHandler{
		memberService: memberService,
		statsService:  statsService,
	}
}

// List lists all savings accounts
func (h *SavingHandler) List(c *fiber.Ctx) error {
	savings, err := h.memberService.ListSavings(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list savings")
	}
	return response.Success(c, "Savings retrieved successfully", savings)
}

// Stats returns the savings dashboard aggregate
func (h *SavingHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.statsService.GetSavingsStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get savings stats")
	}
	return response.Success(c, "Savings stats retrieved successfully", stats)
}

// GetByMember gets a member's savings account
func (h *SavingHandler) GetByMember(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("memberId")
	if err != nil || memberID < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	saving, err := h.memberService.GetSaving(c.Context(), uint(memberID))
	if err != nil {
		if errors.Is(err, domain.ErrSavingNotFound) {
			return response.NotFound(c, "Savings account not found")
		}
		return response.InternalServerError(c, "Failed to get savings account")
	}
	return response.Success(c, "Savings account retrieved successfully", saving)
}
