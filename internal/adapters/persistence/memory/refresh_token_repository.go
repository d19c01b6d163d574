package memory

import (
	"context"
	"sync"
	"time"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"
)

// refreshTokenRepository implements repositories.RefreshTokenRepository
type refreshTokenRepository struct {
	mu     sync.RWMutex
	tokens map[uint]domain.RefreshToken
	order  []uint
	nextID uint
}

// NewRefreshTokenRepository creates a new in-memory refresh token repository
func NewRefreshTokenRepository() repositories.RefreshTokenRepository {
	return &refreshTokenRepository{tokens: make(map[uint]domain.RefreshToken), nextID: 1}
}

// Create stores a new refresh token and assigns its ID
func (r *refreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	token.ID = r.nextID
	r.nextID++
	token.CreatedAt = time.Now()
	r.tokens[token.ID] = *token
	r.order = append(r.order, token.ID)
	return nil
}

// GetByTokenHash gets a refresh token by its SHA256 hash
func (r *refreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if token := r.tokens[id]; token.TokenHash == tokenHash {
			return &token, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Revoke revokes a refresh token by ID
func (r *refreshTokenRepository) Revoke(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	token.RevokedAt = &now
	r.tokens[id] = token
	return nil
}

// RevokeByTokenHash revokes a refresh token by hash
func (r *refreshTokenRepository) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, token := range r.tokens {
		if token.TokenHash == tokenHash && token.RevokedAt == nil {
			now := time.Now()
			token.RevokedAt = &now
			r.tokens[id] = token
			return nil
		}
	}
	return domain.ErrNotFound
}

// RevokeAllByUserID revokes every active token belonging to a user
func (r *refreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for id, token := range r.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
			r.tokens[id] = token
		}
	}
	return nil
}
