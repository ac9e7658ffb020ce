package feed

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"
)

const offersElement = "offers"

var DefaultSections = []ConfigSection{
	{Key: "massagers", CategoryID: "229"},
	{Key: "injectors", CategoryID: "223"},
}

type Builder struct {
	sections   []ConfigSection
	normalizer *Normalizer
}

func NewBuilder(sections []ConfigSection, normalizer *Normalizer) *Builder {
	return &Builder{
		sections:   sections,
		normalizer: normalizer,
	}
}

// Run parses feed data and groups the normalized offers of the configured
// categories into a catalog. Every section key is present in the result.
func (b *Builder) Run(data []byte) (Catalog, error) {
	rawOffers, err := b.readOffers(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	keyByCategory := make(map[string]string, len(b.sections))
	catalog := make(Catalog, len(b.sections))
	for _, section := range b.sections {
		keyByCategory[section.CategoryID] = section.Key
		catalog[section.Key] = []Offer{}
	}

	skipped, dropped := 0, 0
	for _, raw := range rawOffers {
		key, ok := keyByCategory[strings.TrimSpace(raw.CategoryID)]
		if !ok {
			skipped++
			continue
		}

		offer, ok := b.normalizer.Run(raw)
		if !ok {
			dropped++
			continue
		}
		catalog[key] = append(catalog[key], offer)
	}

	for key := range catalog {
		slices.SortStableFunc(catalog[key], compareByPrice)
	}

	slog.Debug("Catalog built",
		"offers", len(rawOffers),
		"skipped", skipped,
		"without_pictures", dropped)

	return catalog, nil
}

// readOffers decodes every child element of the first <offers> element below
// the document element. The
// whole document is consumed so that malformed markup after the container
// is still reported.
func (b *Builder) readOffers(data []byte) ([]RawOffer, error) {
	p := xpp.NewXMLPullParser(bytes.NewReader(data), true, charset.NewReaderLabel)

	var offers []RawOffer
	depth := 0
	containerDepth := 0 // depth of the open <offers> element, 0 when outside it
	seenRoot := false
	seenContainer := false

	for {
		event, err := p.Next()
		if err != nil {
			return nil, err
		}

		switch event {
		case xpp.EndDocument:
			if !seenRoot {
				return nil, errors.New("document has no root element")
			}
			if depth != 0 {
				return nil, fmt.Errorf("unexpected end of document inside <%s>", p.Name)
			}
			return offers, nil

		case xpp.StartTag:
			if depth == 0 && seenRoot {
				return nil, fmt.Errorf("unexpected element <%s> after document element", p.Name)
			}
			seenRoot = true
			if containerDepth != 0 && depth == containerDepth {
				var raw RawOffer
				if err := p.DecodeElement(&raw); err != nil {
					return nil, fmt.Errorf("failed to decode offer: %w", err)
				}
				offers = append(offers, raw)
				continue
			}

			depth++
			// The container is searched below the document element only.
			if !seenContainer && depth > 1 && p.Name == offersElement {
				seenContainer = true
				containerDepth = depth
			}

		case xpp.EndTag:
			if containerDepth != 0 && depth == containerDepth {
				containerDepth = 0
			}
			depth--

		case xpp.Text:
			if depth == 0 && strings.TrimSpace(p.Text) != "" {
				return nil, errors.New("unexpected text outside document element")
			}
		}
	}
}

// compareByPrice orders priced offers ascending and puts unpriced ones last.
func compareByPrice(a, b Offer) int {
	switch {
	case a.Price != nil && b.Price != nil:
		return cmp.Compare(*a.Price, *b.Price)
	case a.Price != nil:
		return -1
	case b.Price != nil:
		return 1
	default:
		return 0
	}
}
