package value

import "strings"

// AssetType is the category of a submitted asset. Unknown categories are
// accepted and scored with the fallback price ladder.
type AssetType string

const (
	AssetTypeAny              AssetType = "any"
	AssetTypeRealEstate       AssetType = "real_estate"
	AssetTypeBusinessAsset    AssetType = "business_asset"
	AssetTypeCar              AssetType = "car"
	AssetTypeEquipment        AssetType = "equipment"
	AssetTypeLuxury           AssetType = "luxury"
	AssetTypeWholesaleProduct AssetType = "wholesale_product"
	AssetTypeCollectible      AssetType = "collectible"
)

// pluralAliases are legacy category names still sent by older scrapers.
var pluralAliases = map[string]AssetType{ //nolint:gochecknoglobals
	"cars":               AssetTypeCar,
	"luxury_items":       AssetTypeLuxury,
	"business_assets":    AssetTypeBusinessAsset,
	"wholesale_products": AssetTypeWholesaleProduct,
}

// NewAssetType normalises user input: trimmed, lower case, spaces and dashes
// folded into underscores, plural aliases mapped to their singular type.
func NewAssetType(s string) AssetType {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)

	if t, ok := pluralAliases[s]; ok {
		return t
	}

	return AssetType(s)
}

func (a AssetType) String() string {
	return string(a)
}

func (a AssetType) IsEmpty() bool {
	return a == ""
}

// Accepts reports whether a buyer filter a admits a deal of type deal.
// An empty filter behaves like "any".
func (a AssetType) Accepts(deal AssetType) bool {
	if a == "" || a == AssetTypeAny {
		return true
	}

	return a == deal
}
