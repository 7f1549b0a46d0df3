package helper

import (
	"testing"

	"nyn_restaurant/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMetadata() OrderMetadata {
	return OrderMetadata{
		FirstName:    "Nataliya",
		LastName:     "K",
		Email:        "nat@example.com",
		Phone:        "+1 212 555 0101",
		Subtotal:     52.00,
		Discount:     5.20,
		Tax:          4.15,
		PackagingFee: constants.PACKAGING_FEE,
		Tip:          5.00,
		Total:        57.45,
		PickupTime:   "18:30",
		Instructions: "ring twice",
		PromoCode:    "SAVE10",
		PromoType:    constants.PROMO_PERCENT,
		PromoValue:   10,
		Items: []MetadataItem{
			{Name: "Borscht", Price: 14.00, Qty: 1, CategoryKey: "soups", ImageRef: "menu/borscht"},
			{Name: "Ribeye Steak", Price: 38.00, Qty: 1, CategoryKey: "mains", ImageRef: "menu/ribeye"},
		},
	}
}

func TestOrderMetadata_RoundTrip(t *testing.T) {
	in := sampleMetadata()

	out, err := ParseOrderMetadata(EncodeOrderMetadata(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncodeOrderMetadata_NoPromoKeysWithoutPromo(t *testing.T) {
	in := sampleMetadata()
	in.PromoCode = ""
	in.PromoType = ""
	in.PromoValue = 0
	in.Discount = 0

	meta := EncodeOrderMetadata(in)
	_, hasCode := meta["promo_code"]
	_, hasType := meta["promo_type"]
	_, hasValue := meta["promo_value"]
	assert.False(t, hasCode)
	assert.False(t, hasType)
	assert.False(t, hasValue)
}

func TestParseOrderMetadata_NoItems(t *testing.T) {
	meta := EncodeOrderMetadata(sampleMetadata())
	meta["items"] = ""

	_, err := ParseOrderMetadata(meta)
	assert.Error(t, err)
}

func TestParseOrderMetadata_BadMoney(t *testing.T) {
	meta := EncodeOrderMetadata(sampleMetadata())
	meta["total"] = "fifty"

	_, err := ParseOrderMetadata(meta)
	assert.Error(t, err)
}

func TestEncodeItems_DelimitersInName(t *testing.T) {
	items := []MetadataItem{
		{Name: "Surf | Turf; deluxe", Price: 49.50, Qty: 2, CategoryKey: "mains"},
	}

	parsed, err := ParseItems(EncodeItems(items))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "Surf | Turf; deluxe", parsed[0].Name)
	assert.Equal(t, 49.50, parsed[0].Price)
	assert.Equal(t, 2, parsed[0].Qty)
}

func TestParseItems_Malformed(t *testing.T) {
	_, err := ParseItems("Borscht|14.00|1") // missing fields
	assert.Error(t, err)

	_, err = ParseItems("Borscht|cheap|1|soups|")
	assert.Error(t, err)
}

func TestShortImageRef(t *testing.T) {
	assert.Equal(t, "menu/borscht",
		ShortImageRef("https://res.cloudinary.com/demo/image/upload/v1712345678/menu/borscht.jpg"))
	assert.Equal(t, "menu/borscht",
		ShortImageRef("https://res.cloudinary.com/demo/image/upload/menu/borscht.png"))
	// non-cloudinary URLs pass through
	assert.Equal(t, "https://example.com/img.png", ShortImageRef("https://example.com/img.png"))
	assert.Equal(t, "", ShortImageRef(""))
}

func TestExpandImageRef_PassThroughURLs(t *testing.T) {
	assert.Equal(t, "https://example.com/img.png", ExpandImageRef("https://example.com/img.png"))
	assert.Equal(t, "", ExpandImageRef(""))
}
