package scoring

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dealflow/internal/domain/value"
)

// Rules is the complete, swappable configuration of the scorer and the tier
// classifier. Amounts are whole dollars.
type Rules struct {
	HighTicket PriceLadder `yaml:"high_ticket"`
	Standard   PriceLadder `yaml:"standard"`
	Fallback   PriceLadder `yaml:"fallback"`

	UrgencyKeywords []string `yaml:"urgency_keywords"`
	UrgencyPoints   int      `yaml:"urgency_points"`
	UrgencyCap      int      `yaml:"urgency_cap"`

	NonPositivePricePenalty int      `yaml:"non_positive_price_penalty"`
	ShortNameLength         int      `yaml:"short_name_length"`
	ShortNamePenalty        int      `yaml:"short_name_penalty"`
	LowPriceBelow           int64    `yaml:"low_price_below"`
	LowPricePenalty         int      `yaml:"low_price_penalty"`
	FraudPhrases            []string `yaml:"fraud_phrases"`
	FraudPenalty            int      `yaml:"fraud_penalty"`

	GreenMin  int `yaml:"green_min"`
	YellowMin int `yaml:"yellow_min"`
}

// PriceLadder maps a price to a profit score: the first step whose Below
// exceeds the price wins, Otherwise applies past the last step.
type PriceLadder struct {
	AssetTypes []value.AssetType `yaml:"asset_types"`
	Steps      []PriceStep       `yaml:"steps"`
	Otherwise  int               `yaml:"otherwise"`
}

type PriceStep struct {
	Below int64 `yaml:"below"`
	Score int   `yaml:"score"`
}

func DefaultRules() Rules {
	return Rules{
		HighTicket: PriceLadder{
			AssetTypes: []value.AssetType{
				value.AssetTypeRealEstate,
				value.AssetTypeBusinessAsset,
			},
			Steps: []PriceStep{
				{Below: 120_000, Score: 45},
				{Below: 250_000, Score: 35},
				{Below: 500_000, Score: 25},
			},
			Otherwise: 10,
		},
		Standard: PriceLadder{
			AssetTypes: []value.AssetType{
				value.AssetTypeCar,
				value.AssetTypeLuxury,
				value.AssetTypeWholesaleProduct,
			},
			Steps: []PriceStep{
				{Below: 8_000, Score: 45},
				{Below: 20_000, Score: 35},
				{Below: 50_000, Score: 25},
			},
			Otherwise: 10,
		},
		Fallback: PriceLadder{
			Steps: []PriceStep{
				{Below: 10_000, Score: 35},
				{Below: 50_000, Score: 25},
			},
			Otherwise: 10,
		},

		UrgencyKeywords: []string{
			"urgent", "must sell", "asap", "reduced",
			"moving", "divorce", "estate", "quick sale",
			"motivated", "need gone", "price reduced",
		},
		UrgencyPoints: 10,
		UrgencyCap:    40,

		NonPositivePricePenalty: 30,
		ShortNameLength:         4,
		ShortNamePenalty:        15,
		LowPriceBelow:           500,
		LowPricePenalty:         25,
		FraudPhrases:            []string{"wire transfer", "crypto only", "gift cards"},
		FraudPenalty:            60,

		GreenMin:  80,
		YellowMin: 60,
	}
}

// LoadRules overlays the YAML file at path on DefaultRules. An empty path
// returns the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("rules.Validate: %w", err)
	}

	return rules, nil
}

func (r Rules) Validate() error {
	var errs []error

	for name, ladder := range map[string]PriceLadder{
		"high_ticket": r.HighTicket,
		"standard":    r.Standard,
		"fallback":    r.Fallback,
	} {
		for i := 1; i < len(ladder.Steps); i++ {
			if ladder.Steps[i].Below <= ladder.Steps[i-1].Below {
				errs = append(errs, fmt.Errorf("%s: steps must be strictly ascending", name))
				break
			}
		}
	}

	if r.UrgencyPoints < 0 || r.UrgencyCap < 0 {
		errs = append(errs, errors.New("urgency points and cap must be non-negative"))
	}

	if r.YellowMin > r.GreenMin {
		errs = append(errs, errors.New("yellow_min must not exceed green_min"))
	}

	return errors.Join(errs...)
}

// ladderFor picks the ladder whose asset type list contains assetType.
func (r Rules) ladderFor(assetType value.AssetType) PriceLadder {
	for _, ladder := range []PriceLadder{r.HighTicket, r.Standard} {
		for _, t := range ladder.AssetTypes {
			if value.NewAssetType(t.String()) == assetType {
				return ladder
			}
		}
	}

	return r.Fallback
}
