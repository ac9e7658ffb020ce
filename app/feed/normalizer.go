package feed

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	brandParam        = "бренд"
	productivityParam = "производительность"
	maxExtraParams    = 3
)

type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Run converts a raw offer into its output form. It reports false for
// offers without a single non-empty picture; those never reach a catalog.
func (n *Normalizer) Run(raw RawOffer) (Offer, bool) {
	pictures := make([]string, 0, len(raw.Pictures))
	for _, picture := range raw.Pictures {
		if picture = strings.TrimSpace(picture); picture != "" {
			pictures = append(pictures, picture)
		}
	}
	if len(pictures) == 0 {
		return Offer{}, false
	}

	params := NewParams(raw.Params)
	// Casers keep internal state and must not be shared between goroutines.
	lower := cases.Lower(language.Russian)

	offer := Offer{
		ID:          raw.ID,
		Name:        trimmed(first(raw.Name)),
		URL:         trimmed(first(raw.URL)),
		Description: trimmed(first(raw.Description)),
		Pictures:    pictures,
		Price:       parsePrice(first(raw.Price)),
		AllParams:   params.All(),
		ExtraParams: make([]Param, 0, maxExtraParams),
		CategoryID:  trimmed(&raw.CategoryID),
	}

	if offer.Price != nil {
		display := FormatPrice(*offer.Price)
		offer.PriceDisplay = &display
	}

	brand, hasBrand := params.Find(func(name string) bool {
		return lower.String(name) == brandParam
	})
	if hasBrand {
		offer.Brand = &brand.Value
	}

	productivity, hasProductivity := params.Find(func(name string) bool {
		return strings.Contains(lower.String(name), productivityParam)
	})
	if hasProductivity {
		offer.Productivity = &Param{Name: productivity.Name, Value: productivity.Value}
	}

	for _, param := range offer.AllParams {
		if len(offer.ExtraParams) == maxExtraParams {
			break
		}
		if hasBrand && param.Name == brand.Name {
			continue
		}
		if hasProductivity && param.Name == productivity.Name {
			continue
		}
		offer.ExtraParams = append(offer.ExtraParams, param)
	}

	return offer, true
}

func first(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	return &values[0]
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
