package value

import (
	"fmt"

	"github.com/google/uuid"
)

type DealID uuid.UUID

func NewDealID() DealID {
	return DealID(uuid.New())
}

func ParseDealID(s string) (DealID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return DealID{}, fmt.Errorf("uuid.Parse: %w", err)
	}

	return DealID(id), nil
}

func (id DealID) UUID() uuid.UUID { return uuid.UUID(id) }
func (id DealID) String() string  { return uuid.UUID(id).String() }

type BuyerID uuid.UUID

func NewBuyerID() BuyerID {
	return BuyerID(uuid.New())
}

func ParseBuyerID(s string) (BuyerID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return BuyerID{}, fmt.Errorf("uuid.Parse: %w", err)
	}

	return BuyerID(id), nil
}

func (id BuyerID) UUID() uuid.UUID { return uuid.UUID(id) }
func (id BuyerID) String() string  { return uuid.UUID(id).String() }

type MatchID uuid.UUID

func NewMatchID() MatchID {
	return MatchID(uuid.New())
}

func ParseMatchID(s string) (MatchID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return MatchID{}, fmt.Errorf("uuid.Parse: %w", err)
	}

	return MatchID(id), nil
}

func (id MatchID) UUID() uuid.UUID { return uuid.UUID(id) }
func (id MatchID) String() string  { return uuid.UUID(id).String() }
