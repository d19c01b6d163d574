package handlers

import (
	"errors"

	"coopfund/internal/core/domain"
	"coopfund/internal/core/services"
	"coopfund/internal/pkg/response"
	"coopfund/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler handles ledger transaction endpoints
type TransactionHandler struct {
	ledger *services.LedgerService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledger *services.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// ListRecent lists the most recent transactions, newest first
func (h *TransactionHandler) ListRecent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)

	txs, err := h.ledger.ListRecent(c.Context(), limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list transactions")
	}
	return response.Success(c, "Transactions retrieved successfully", txs)
}

// Get gets a transaction by ID
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid transaction ID")
	}

	tx, err := h.ledger.GetTransaction(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Transaction not found")
		}
		return response.InternalServerError(c, "Failed to get transaction")
	}
	return response.Success(c, "Transaction retrieved successfully", tx)
}

// ListByMember lists a member's transactions
func (h *TransactionHandler) ListByMember(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("memberId")
	if err != nil || memberID < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	txs, err := h.ledger.ListByMember(c.Context(), uint(memberID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list transactions")
	}
	return response.Success(c, "Transactions retrieved successfully", txs)
}

// Create records a transaction and runs the ledger cascade
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var input services.RecordTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.ValidationFailed(c, validate.Message(err), validate.Fields(err))
	}

	tx, err := h.ledger.RecordTransaction(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be greater than zero")
		case errors.Is(err, domain.ErrInvalidTransactionType):
			return response.BadRequest(c, "Invalid transaction type")
		case errors.Is(err, domain.ErrInvalidTransactionStatus):
			return response.BadRequest(c, "Invalid transaction status")
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		default:
			return response.InternalServerError(c, "Failed to record transaction")
		}
	}
	return response.Created(c, "Transaction recorded successfully", tx)
}
