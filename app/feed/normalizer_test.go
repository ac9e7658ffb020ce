package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestNormalizer_RejectsOffersWithoutPictures(t *testing.T) {
	normalizer := NewNormalizer()

	tests := []struct {
		name     string
		pictures []string
	}{
		{"no pictures", nil},
		{"empty picture", []string{""}},
		{"whitespace pictures", []string{"  ", "\n\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := normalizer.Run(RawOffer{
				ID:         strPtr("1"),
				CategoryID: "229",
				Price:      []string{"100"},
				Pictures:   tt.pictures,
			})
			assert.False(t, ok)
		})
	}
}

func TestNormalizer_Pictures(t *testing.T) {
	offer, ok := NewNormalizer().Run(RawOffer{
		Pictures: []string{" https://example.com/a.jpg ", "", "https://example.com/b.jpg", "   "},
	})
	require.True(t, ok)
	assert.Equal(t, []string{"https://example.com/a.jpg", "https://example.com/b.jpg"}, offer.Pictures)
}

func TestNormalizer_Price(t *testing.T) {
	tests := []struct {
		name        string
		price       []string
		wantPrice   *float64
		wantDisplay *string
	}{
		{"thousands", []string{"1234567"}, ptrFloat(1234567), strPtr("1 234 567 ₽")},
		{"fraction truncated", []string{" 123456.7 "}, ptrFloat(123456.7), strPtr("123 456 ₽")},
		{"small", []string{"999"}, ptrFloat(999), strPtr("999 ₽")},
		{"zero", []string{"0"}, ptrFloat(0), strPtr("0 ₽")},
		{"missing", nil, nil, nil},
		{"empty", []string{"  "}, nil, nil},
		{"not a number", []string{"по запросу"}, nil, nil},
		{"comma decimal", []string{"1234,50"}, nil, nil},
		{"not finite", []string{"NaN"}, nil, nil},
		{"infinite", []string{"inf"}, nil, nil},
		{"huge", []string{"1e20"}, ptrFloat(1e20), strPtr("100 000 000 000 000 000 000 ₽")},
		{"repeated keeps first", []string{"500", "700"}, ptrFloat(500), strPtr("500 ₽")},
	}

	normalizer := NewNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer, ok := normalizer.Run(RawOffer{Price: tt.price, Pictures: []string{"p.jpg"}})
			require.True(t, ok)
			assert.Equal(t, tt.wantPrice, offer.Price)
			assert.Equal(t, tt.wantDisplay, offer.PriceDisplay)
		})
	}
}

func TestNormalizer_Params(t *testing.T) {
	offer, ok := NewNormalizer().Run(RawOffer{
		Pictures: []string{"p.jpg"},
		Params: []RawParam{
			{Name: "Бренд", Value: "Acme"},
			{Name: "Производительность, Вт", Value: "500"},
			{Name: "Цвет", Value: "красный"},
			{Name: "Вес", Value: "2кг"},
			{Name: "Материал", Value: "пластик"},
		},
	})
	require.True(t, ok)

	require.NotNil(t, offer.Brand)
	assert.Equal(t, "Acme", *offer.Brand)
	assert.Equal(t, &Param{Name: "Производительность, Вт", Value: "500"}, offer.Productivity)
	assert.Equal(t, []Param{
		{Name: "Цвет", Value: "красный"},
		{Name: "Вес", Value: "2кг"},
		{Name: "Материал", Value: "пластик"},
	}, offer.ExtraParams)
	assert.Len(t, offer.AllParams, 5)
	assert.Equal(t, "Бренд", offer.AllParams[0].Name)
	assert.Equal(t, "Материал", offer.AllParams[4].Name)
}

func TestNormalizer_ParamsCaseInsensitive(t *testing.T) {
	offer, ok := NewNormalizer().Run(RawOffer{
		Pictures: []string{"p.jpg"},
		Params: []RawParam{
			{Name: "Страна", Value: "Китай"},
			{Name: "БРЕНД", Value: "Acme"},
			{Name: "бренд", Value: "Other"},
			{Name: "Макс. ПРОИЗВОДИТЕЛЬНОСТЬ", Value: "40 л/ч"},
		},
	})
	require.True(t, ok)

	require.NotNil(t, offer.Brand)
	assert.Equal(t, "Acme", *offer.Brand)
	require.NotNil(t, offer.Productivity)
	assert.Equal(t, "Макс. ПРОИЗВОДИТЕЛЬНОСТЬ", offer.Productivity.Name)
	// Only the selected brand key is excluded from extra params.
	assert.Equal(t, []Param{
		{Name: "Страна", Value: "Китай"},
		{Name: "бренд", Value: "Other"},
	}, offer.ExtraParams)
}

func TestNormalizer_ParamsSkipEmptyAndDuplicates(t *testing.T) {
	offer, ok := NewNormalizer().Run(RawOffer{
		Pictures: []string{"p.jpg"},
		Params: []RawParam{
			{Name: "Цвет", Value: "красный"},
			{Name: "  ", Value: "без имени"},
			{Name: "Вес", Value: "   "},
			{Name: "Объем", Value: "1 л"},
			{Name: " Цвет ", Value: " синий "},
		},
	})
	require.True(t, ok)

	assert.Equal(t, []Param{
		{Name: "Цвет", Value: "синий"},
		{Name: "Объем", Value: "1 л"},
	}, offer.AllParams)
	assert.Equal(t, offer.AllParams, offer.ExtraParams)
	assert.Nil(t, offer.Brand)
	assert.Nil(t, offer.Productivity)
}

func TestNormalizer_NoParams(t *testing.T) {
	offer, ok := NewNormalizer().Run(RawOffer{Pictures: []string{"p.jpg"}})
	require.True(t, ok)

	assert.NotNil(t, offer.ExtraParams)
	assert.Empty(t, offer.ExtraParams)
	assert.NotNil(t, offer.AllParams)
	assert.Empty(t, offer.AllParams)
}

func TestNormalizer_TextFields(t *testing.T) {
	offer, ok := NewNormalizer().Run(RawOffer{
		ID:          strPtr("42"),
		CategoryID:  " 223 ",
		Name:        []string{"  Инъектор X  ", "Инъектор Y"},
		URL:         []string{"https://t-sib.ru/x"},
		Description: []string{" \n "},
		Pictures:    []string{"p.jpg"},
	})
	require.True(t, ok)

	assert.Equal(t, strPtr("42"), offer.ID)
	assert.Equal(t, strPtr("223"), offer.CategoryID)
	assert.Equal(t, strPtr("Инъектор X"), offer.Name)
	assert.Equal(t, strPtr("https://t-sib.ru/x"), offer.URL)
	assert.Nil(t, offer.Description)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{0, "0 ₽"},
		{999.99, "999 ₽"},
		{1000, "1 000 ₽"},
		{123456.7, "123 456 ₽"},
		{1234567, "1 234 567 ₽"},
		{-1234.5, "-1 234 ₽"},
		{-0.5, "0 ₽"},
		{1e20, "100 000 000 000 000 000 000 ₽"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.price))
	}
}

func TestParams_Order(t *testing.T) {
	params := NewParams([]RawParam{
		{Name: "a", Value: "1"},
		{Name: "b", Value: "2"},
		{Name: "a", Value: "3"},
	})

	assert.Equal(t, []Param{{Name: "a", Value: "3"}, {Name: "b", Value: "2"}}, params.All())

	_, ok := params.Find(func(name string) bool { return name == "A" })
	assert.False(t, ok)
}

func ptrFloat(f float64) *float64 {
	return &f
}
