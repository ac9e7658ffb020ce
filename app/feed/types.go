package feed

import (
	"time"
)

// Raw feed types, decoded from a single <offer> element

// RawOffer keeps repeated child elements in document order; the normalizer
// reads only the first of each.
type RawOffer struct {
	ID          *string    `xml:"id,attr"`
	CategoryID  string     `xml:"categoryId"`
	Name        []string   `xml:"name"`
	URL         []string   `xml:"url"`
	Price       []string   `xml:"price"`
	Description []string   `xml:"description"`
	Pictures    []string   `xml:"picture"`
	Params      []RawParam `xml:"param"`
}

type RawParam struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// Normalized output types

type Param struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Offer struct {
	ID           *string  `json:"id"`
	Name         *string  `json:"name"`
	Price        *float64 `json:"price"`
	PriceDisplay *string  `json:"price_display"`
	URL          *string  `json:"url"`
	Description  *string  `json:"description"`
	Pictures     []string `json:"pictures"`
	Brand        *string  `json:"brand"`
	Productivity *Param   `json:"productivity"`
	ExtraParams  []Param  `json:"extra_params"`
	AllParams    []Param  `json:"all_params"`
	CategoryID   *string  `json:"category_id"`
}

// Catalog maps a section key ("massagers", "injectors") to its sorted offers.
type Catalog map[string][]Offer

// Configuration types

type Config struct {
	URL      string          `yaml:"url"`
	Settings ConfigSettings  `yaml:"settings"`
	Sections []ConfigSection `yaml:"sections"`
}

type ConfigSettings struct {
	Timeout         int `yaml:"timeout"`          // seconds
	RefreshInterval int `yaml:"refresh_interval"` // seconds
}

type ConfigSection struct {
	Key        string `yaml:"key"`
	CategoryID string `yaml:"category_id"`
}

func (s ConfigSettings) GetTimeout() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

func (s ConfigSettings) GetRefreshInterval() time.Duration {
	return time.Duration(s.RefreshInterval) * time.Second
}
