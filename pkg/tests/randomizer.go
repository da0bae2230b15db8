package tests

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

type Randomizer struct {
	Bool func() bool
	// Money returns an amount in [lo, hi) with cents precision.
	Money func(lo, hi float64) decimal.Decimal
}

func NewRandomizer() Randomizer {
	random := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // for tests

	return Randomizer{
		Bool: func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
		Money: func(lo, hi float64) decimal.Decimal {
			return decimal.NewFromFloat(lo + random.Float64()*(hi-lo)).Round(2) //nolint:mnd // cents
		},
	}
}
