package entity

import (
	"time"

	"dealflow/internal/domain/value"
)

// MatchCandidate is a (deal, buyer) pair that satisfied every matching
// predicate at matching time.
type MatchCandidate struct {
	DealID  value.DealID
	BuyerID value.BuyerID
}

type Match struct {
	ID         value.MatchID
	DealID     value.DealID
	BuyerID    value.BuyerID
	Status     value.MatchStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
	NotifiedAt *time.Time
}

// PendingNotification joins a match with the deal and buyer data needed to
// contact the buyer.
type PendingNotification struct {
	Match Match
	Deal  Deal
	Buyer Buyer
}

// MatchOutcome is the result of one delivery attempt.
type MatchOutcome struct {
	MatchID   value.MatchID
	DealID    value.DealID
	BuyerID   value.BuyerID
	Status    value.MatchStatus
	EmailSent bool
	SMSSent   bool
	// Skipped is set when the match was already settled by another sweep.
	Skipped bool
}
