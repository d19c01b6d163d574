package handlers

import (
	"errors"

	"coopfund/internal/core/domain"
	"coopfund/internal/core/services"
	"coopfund/internal/pkg/response"
	"coopfund/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member endpoints
type MemberHandler struct {
	memberService *services.MemberService
	statsService  *services.StatsService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService, statsService *services.StatsService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		statsService:  statsService,
	}
}

// List lists members, optionally filtered by status
func (h *MemberHandler) List(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		members, err := h.memberService.ListByStatus(c.Context(), domain.MemberStatus(status))
		if err != nil {
			if errors.Is(err, domain.ErrInvalidMemberStatus) {
				return response.BadRequest(c, "Invalid member status")
			}
			return response.InternalServerError(c, "Failed to list members")
		}
		return response.Success(c, "Members retrieved successfully", members)
	}

	members, err := h.memberService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}
	return response.Success(c, "Members retrieved successfully", members)
}

// Stats returns member counts by status
func (h *MemberHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.statsService.GetMemberStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get member stats")
	}
	return response.Success(c, "Member stats retrieved successfully", stats)
}

// Get gets a member by ID
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}
	return response.Success(c, "Member retrieved successfully", member)
}

// Create registers a new member
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var input services.CreateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.ValidationFailed(c, validate.Message(err), validate.Fields(err))
	}

	member, err := h.memberService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrEmployeeIDAlreadyUsed):
			return response.Conflict(c, "Employee ID already registered")
		case errors.Is(err, domain.ErrInvalidMemberStatus):
			return response.BadRequest(c, "Invalid member status")
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Monthly contribution must not be negative")
		default:
			return response.InternalServerError(c, "Failed to create member")
		}
	}
	return response.Created(c, "Member created successfully", member)
}

// Update applies a partial update to a member
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	var input services.UpdateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrInvalidMemberStatus):
			return response.BadRequest(c, "Invalid member status")
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Monthly contribution must not be negative")
		default:
			return response.InternalServerError(c, "Failed to update member")
		}
	}
	return response.Success(c, "Member updated successfully", member)
}

// Me returns the member linked to the authenticated user
func (h *MemberHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	member, err := h.memberService.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}
	return response.Success(c, "Member retrieved successfully", member)
}
