package assistant

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
)

const (
	motivatedUrgency  = 20
	underpricedProfit = 35
	scamRisk          = 40
	minNameLength     = 5
	minDescLength     = 15
)

const sellerMessage = `Hi! I saw your listing and I'm interested.
Is it still available?
Can you share:
- more photos
- reason for sale
- best time to view
- any issues to disclose
`

// Analyzer produces an operator-facing analysis of a scored deal: tags,
// a summary, a recommendation with its confidence and outreach templates.
type Analyzer struct {
	now     func() time.Time
	printer *message.Printer
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		now:     time.Now,
		printer: message.NewPrinter(language.English),
	}
}

func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

func (a *Analyzer) Analyze(deal entity.Deal) entity.Analysis {
	recommendation, confidence := recommend(deal.Scores)

	return entity.Analysis{
		Summary:        a.summary(deal),
		Recommendation: recommendation,
		Tags:           tags(deal),
		BuyerMessage:   a.buyerMessage(deal),
		SellerMessage:  sellerMessage,
		Confidence:     confidence,
		CreatedAt:      a.now().UTC(),
	}
}

func tags(deal entity.Deal) []entity.DealTag {
	var out []entity.DealTag

	if deal.Scores.Urgency >= motivatedUrgency {
		out = append(out, entity.TagMotivatedSeller)
	}

	if deal.Scores.Profit >= underpricedProfit {
		out = append(out, entity.TagUnderpriced)
	}

	if deal.Scores.Risk >= scamRisk {
		out = append(out, entity.TagScamRisk)
	}

	if utf8.RuneCountInString(strings.TrimSpace(deal.Name)) < minNameLength ||
		utf8.RuneCountInString(strings.TrimSpace(deal.Description)) < minDescLength {
		out = append(out, entity.TagLowInfo)
	}

	text := cases.Fold().String(deal.Name + " " + deal.Description)

	switch deal.AssetType {
	case value.AssetTypeLuxury:
		if strings.Contains(text, "rolex") || strings.Contains(text, "omega") {
			out = append(out, entity.TagRareItem)
		}
	case value.AssetTypeRealEstate:
		if strings.Contains(text, "foreclosure") || strings.Contains(text, "as-is") {
			out = append(out, entity.TagFastFlip)
		}
	}

	return out
}

func recommend(scores entity.Scores) (string, int) {
	switch {
	case scores.Composite >= 80 && scores.Risk < 30:
		return "HIGH PRIORITY: Contact buyer(s) immediately and request proof + availability.", 85
	case scores.Composite >= 60 && scores.Risk < 40:
		return "GOOD: Worth sending to matching buyers. Ask for more details and verify listing.", 75
	case scores.Risk >= 40:
		return "CAUTION: High risk signals. Verify hard before engaging (avoid wire/crypto-only).", 65
	default:
		return "LOW: Not strong enough. Keep in inventory but do not prioritize.", 55
	}
}

func (a *Analyzer) summary(deal entity.Deal) string {
	return a.printer.Sprintf(
		"%s deal in %s for $%d. Score=%d (Profit=%d, Urgency=%d, Risk=%d). Title: %s",
		strings.ToUpper(deal.AssetType.String()),
		deal.Location,
		deal.Price.Round(0).IntPart(),
		deal.Scores.Composite,
		deal.Scores.Profit,
		deal.Scores.Urgency,
		deal.Scores.Risk,
		deal.Name,
	)
}

func (a *Analyzer) buyerMessage(deal entity.Deal) string {
	return a.printer.Sprintf(
		"New %s deal found!\nLocation: %s\nPrice: $%d\nScore: %d/100\n\nSummary: %s\nReply YES for details / hold request.",
		strings.ReplaceAll(deal.AssetType.String(), "_", " "),
		deal.Location,
		deal.Price.Round(0).IntPart(),
		deal.Scores.Composite,
		deal.Name,
	)
}
