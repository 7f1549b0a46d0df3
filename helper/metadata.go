package helper

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"nyn_restaurant/config"
)

// OrderMetadata is the order snapshot carried through the payment gateway's
// metadata field. The gateway treats it as opaque; the webhook reconciler
// turns it back into an Order.
type OrderMetadata struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Subtotal     float64
	Discount     float64
	Tax          float64
	PackagingFee float64
	Tip          float64
	Total        float64
	PickupTime   string
	Instructions string
	PromoCode    string
	PromoType    string
	PromoValue   float64
	Items        []MetadataItem
}

type MetadataItem struct {
	Name        string
	Price       float64
	Qty         int
	CategoryKey string
	ImageRef    string // shortened, expanded again at webhook time
}

// EncodeOrderMetadata flattens the snapshot into the gateway's string→string
// map. Values must stay under the gateway's per-value size limit, which is why
// item image URLs travel as short refs.
func EncodeOrderMetadata(m OrderMetadata) map[string]string {
	meta := map[string]string{
		"first_name":    m.FirstName,
		"last_name":     m.LastName,
		"email":         m.Email,
		"phone":         m.Phone,
		"subtotal":      formatMoney(m.Subtotal),
		"discount":      formatMoney(m.Discount),
		"tax":           formatMoney(m.Tax),
		"packaging_fee": formatMoney(m.PackagingFee),
		"tip":           formatMoney(m.Tip),
		"total":         formatMoney(m.Total),
		"pickup_time":   m.PickupTime,
		"instructions":  m.Instructions,
		"items":         EncodeItems(m.Items),
	}
	if m.PromoCode != "" {
		meta["promo_code"] = m.PromoCode
		meta["promo_type"] = m.PromoType
		meta["promo_value"] = formatMoney(m.PromoValue)
	}
	return meta
}

// ParseOrderMetadata is the inverse of EncodeOrderMetadata.
func ParseOrderMetadata(meta map[string]string) (OrderMetadata, error) {
	items, err := ParseItems(meta["items"])
	if err != nil {
		return OrderMetadata{}, err
	}
	if len(items) == 0 {
		return OrderMetadata{}, fmt.Errorf("metadata has no items")
	}

	m := OrderMetadata{
		FirstName:    meta["first_name"],
		LastName:     meta["last_name"],
		Email:        meta["email"],
		Phone:        meta["phone"],
		PickupTime:   meta["pickup_time"],
		Instructions: meta["instructions"],
		PromoCode:    meta["promo_code"],
		PromoType:    meta["promo_type"],
		Items:        items,
	}

	fields := []struct {
		key string
		dst *float64
	}{
		{"subtotal", &m.Subtotal},
		{"discount", &m.Discount},
		{"tax", &m.Tax},
		{"packaging_fee", &m.PackagingFee},
		{"tip", &m.Tip},
		{"total", &m.Total},
		{"promo_value", &m.PromoValue},
	}
	for _, f := range fields {
		raw, ok := meta[f.key]
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return OrderMetadata{}, fmt.Errorf("metadata field %s: %w", f.key, err)
		}
		*f.dst = v
	}
	return m, nil
}

// EncodeItems packs order lines into one compact value:
// name|price|qty|category|imageRef entries joined by semicolons, each field
// query-escaped so delimiters inside names cannot break the framing.
func EncodeItems(items []MetadataItem) string {
	entries := make([]string, 0, len(items))
	for _, item := range items {
		entries = append(entries, strings.Join([]string{
			url.QueryEscape(item.Name),
			formatMoney(item.Price),
			strconv.Itoa(item.Qty),
			url.QueryEscape(item.CategoryKey),
			url.QueryEscape(item.ImageRef),
		}, "|"))
	}
	return strings.Join(entries, ";")
}

func ParseItems(encoded string) ([]MetadataItem, error) {
	if encoded == "" {
		return nil, nil
	}
	entries := strings.Split(encoded, ";")
	items := make([]MetadataItem, 0, len(entries))
	for _, entry := range entries {
		parts := strings.Split(entry, "|")
		if len(parts) != 5 {
			return nil, fmt.Errorf("malformed item entry %q", entry)
		}
		name, err := url.QueryUnescape(parts[0])
		if err != nil {
			return nil, err
		}
		price, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("item %q price: %w", name, err)
		}
		qty, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("item %q qty: %w", name, err)
		}
		category, err := url.QueryUnescape(parts[3])
		if err != nil {
			return nil, err
		}
		imageRef, err := url.QueryUnescape(parts[4])
		if err != nil {
			return nil, err
		}
		items = append(items, MetadataItem{
			Name:        name,
			Price:       price,
			Qty:         qty,
			CategoryKey: category,
			ImageRef:    imageRef,
		})
	}
	return items, nil
}

// ShortImageRef reduces a cloudinary delivery URL to its public id so it fits
// in gateway metadata. Non-cloudinary values pass through unchanged.
func ShortImageRef(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	i := strings.Index(imageURL, "/upload/")
	if i < 0 {
		return imageURL
	}
	ref := imageURL[i+len("/upload/"):]
	// strip the version segment (v1712345678/)
	if strings.HasPrefix(ref, "v") {
		if j := strings.Index(ref, "/"); j > 1 {
			if _, err := strconv.Atoi(ref[1:j]); err == nil {
				ref = ref[j+1:]
			}
		}
	}
	if j := strings.LastIndex(ref, "."); j >= 0 {
		ref = ref[:j]
	}
	return ref
}

// ExpandImageRef rebuilds the full delivery URL from a short ref.
func ExpandImageRef(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	cloud := config.Config("CLOUDINARY_CLOUD_NAME")
	if cloud == "" {
		return ref
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", cloud, ref)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', 2, 64)
}
