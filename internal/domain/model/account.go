package model

import "time"

// UserAccount holds the credit balance for one Telegram user.
// Accounts are created lazily on first touch and never deleted.
type UserAccount struct {
	TelegramID int64
	Credits    int64
	LastTopUp  *time.Time // calendar date of the last daily grant, nil before the first
}

func NewUserAccount(tgID int64) *UserAccount {
	return &UserAccount{TelegramID: tgID}
}

// TopUpDue reports whether the daily grant still applies on the given day.
// Days are compared on the UTC calendar.
func (a *UserAccount) TopUpDue(now time.Time) bool {
	if a.LastTopUp == nil {
		return true
	}
	y1, m1, d1 := a.LastTopUp.UTC().Date()
	y2, m2, d2 := now.UTC().Date()
	return y1 != y2 || m1 != m2 || d1 != d2
}

// ApplyDelta adds delta (signed) to the balance, clamping at a floor of zero.
// A deduction larger than the balance silently empties the account rather
// than failing. Returns the resulting balance.
func (a *UserAccount) ApplyDelta(delta int64) int64 {
	a.Credits += delta
	if a.Credits < 0 {
		a.Credits = 0
	}
	return a.Credits
}
