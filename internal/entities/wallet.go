package entities

import "time"

// Wallet is a player's single authoritative gold balance. LifetimeEarned
// only ever grows; Gold floors at zero on debits.
type Wallet struct {
	UserID         string    `json:"user_id"`
	Gold           int       `json:"gold"`
	LifetimeEarned int       `json:"lifetime_earned"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewWallet returns an empty wallet
func NewWallet(userID string) *Wallet {
	return &Wallet{
		UserID:    userID,
		UpdatedAt: time.Now().UTC(),
	}
}

// Credit adds gold to the balance and the lifetime counter
func (w *Wallet) Credit(amount int) {
	if amount <= 0 {
		return
	}
	w.Gold += amount
	w.LifetimeEarned += amount
}

// Debit removes gold from the balance, floored at zero. Returns the amount
// actually removed.
func (w *Wallet) Debit(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > w.Gold {
		amount = w.Gold
	}
	w.Gold -= amount
	return amount
}
