package model

import (
	"time"

	"telegram-lookup-bot/internal/domain"

	"github.com/oklog/ulid/v2"
)

// RedeemCode is a single-use token exchangeable for a fixed credit amount.
// ULID row ids are creation-ordered, which keeps listings deterministic when
// two codes share a creation timestamp.
type RedeemCode struct {
	ID        string
	Code      string
	Amount    int64
	CreatedBy int64
	CreatedAt time.Time
	UsedBy    *int64     // Pointer to allow for NULL
	UsedAt    *time.Time // Pointer to allow for NULL
}

func NewRedeemCode(code string, amount int64, createdBy int64) (*RedeemCode, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if code == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &RedeemCode{
		ID:        ulid.Make().String(),
		Code:      code,
		Amount:    amount,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (c *RedeemCode) Used() bool { return c.UsedBy != nil }

// MarkUsed transitions the code to its terminal state. A used code stays used.
func (c *RedeemCode) MarkUsed(userID int64, at time.Time) error {
	if c.Used() {
		return domain.ErrCodeAlreadyUsed
	}
	c.UsedBy = &userID
	c.UsedAt = &at
	return nil
}
