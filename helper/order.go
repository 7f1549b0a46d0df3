package helper

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"nyn_restaurant/constants"
	"nyn_restaurant/model"

	"gorm.io/gorm"
)

// moneyTolerance absorbs client-side float rounding; anything beyond a cent
// is treated as a forged or stale total.
const moneyTolerance = 0.01

func moneyEqual(a, b float64) bool {
	return math.Abs(a-b) <= moneyTolerance
}

// VerifyCheckoutTotals re-derives every money field of a checkout request from
// authoritative data before anything is charged: unit prices from menu_items,
// the discount from the stored promotion, tax and packaging from house rates,
// and the closing identity total = subtotal − discount + tax + packaging + tip.
// Returns a user-facing reason when the request is rejected.
func VerifyCheckoutTotals(db *gorm.DB, input *model.CheckoutInput) (string, error) {
	subtotal := 0.0
	for _, item := range input.Items {
		var menuItem model.MenuItem
		err := db.Where("name = ? AND category_key = ?", item.Name, item.CategoryKey).First(&menuItem).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Sprintf("Unknown menu item: %s", item.Name), nil
			}
			return "", err
		}
		if !menuItem.Available {
			return fmt.Sprintf("%s is currently unavailable", menuItem.Name), nil
		}
		if !moneyEqual(item.Price, menuItem.Price) {
			return fmt.Sprintf("Price for %s does not match the menu", menuItem.Name), nil
		}
		subtotal += menuItem.Price * float64(item.Qty)
	}
	subtotal = Round2(subtotal)

	if !moneyEqual(input.Subtotal, subtotal) {
		return "Subtotal does not match menu prices", nil
	}

	discount := 0.0
	if input.PromoCode != "" {
		applied, reason, err := ApplyPromo(db, input.PromoCode, subtotal)
		if err != nil {
			return "", err
		}
		if reason != "" {
			return reason, nil
		}
		discount = applied.Discount
	}
	if !moneyEqual(input.Discount, discount) {
		return "Discount does not match the promotion", nil
	}

	if !moneyEqual(input.Tax, ComputeTax(subtotal-discount)) {
		return "Tax does not match the current rate", nil
	}
	if !moneyEqual(input.PackagingFee, constants.PACKAGING_FEE) {
		return "Packaging fee does not match", nil
	}
	if input.Tip < 0 {
		return "Tip cannot be negative", nil
	}

	expectedTotal := Round2(subtotal - discount + input.Tax + input.PackagingFee + input.Tip)
	if !moneyEqual(input.Total, expectedTotal) {
		return "Order total does not add up", nil
	}
	return "", nil
}

// BuildOrderMetadata snapshots a verified checkout request for the gateway.
func BuildOrderMetadata(input *model.CheckoutInput) OrderMetadata {
	items := make([]MetadataItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, MetadataItem{
			Name:        item.Name,
			Price:       item.Price,
			Qty:         item.Qty,
			CategoryKey: item.CategoryKey,
			ImageRef:    ShortImageRef(item.Image),
		})
	}
	return OrderMetadata{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		Subtotal:     input.Subtotal,
		Discount:     input.Discount,
		Tax:          input.Tax,
		PackagingFee: input.PackagingFee,
		Tip:          input.Tip,
		Total:        input.Total,
		PickupTime:   input.PickupTime,
		Instructions: input.Instructions,
		PromoCode:    input.PromoCode,
		PromoType:    input.PromoType,
		PromoValue:   input.PromoValue,
		Items:        items,
	}
}

// MaterializeOrder turns a confirmed payment into a persisted order exactly
// once. Creation is keyed on the unique payment reference: a redelivered
// webhook (gateway retry, or both event kinds firing for one payment) finds
// the existing row and returns created=false without touching the promotion
// counter again. Two truly concurrent deliveries race to the unique index;
// the loser's transaction fails, the gateway retries, and the retry lands on
// the existing row.
func MaterializeOrder(db *gorm.DB, paymentRef string, meta OrderMetadata, now time.Time) (*model.Order, bool, error) {
	var order model.Order
	created := false

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Items").Where("payment_reference = ?", paymentRef).First(&order).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		order = model.Order{
			OrderNumber:      GenerateOrderNumber(now),
			PaymentReference: paymentRef,
			PaymentStatus:    constants.PAYMENT_PAID,
			Status:           constants.ORDER_PENDING,
			FirstName:        meta.FirstName,
			LastName:         meta.LastName,
			Email:            meta.Email,
			Phone:            meta.Phone,
			Subtotal:         meta.Subtotal,
			Discount:         meta.Discount,
			Tax:              meta.Tax,
			PackagingFee:     meta.PackagingFee,
			Tip:              meta.Tip,
			Total:            meta.Total,
			PickupTime:       meta.PickupTime,
			Instructions:     meta.Instructions,
		}
		if meta.PromoCode != "" {
			code := NormalizePromoCode(meta.PromoCode)
			order.PromoCode = &code
			if meta.PromoType != "" {
				promoType := meta.PromoType
				order.PromoType = &promoType
			}
			if meta.PromoValue > 0 {
				promoValue := meta.PromoValue
				order.PromoValue = &promoValue
			}
		}
		for _, item := range meta.Items {
			order.Items = append(order.Items, model.OrderItem{
				Name:        item.Name,
				Price:       item.Price,
				Qty:         item.Qty,
				CategoryKey: item.CategoryKey,
				Image:       ExpandImageRef(item.ImageRef),
			})
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if meta.PromoCode != "" {
			if err := tx.Model(&model.Promotion{}).
				Where("UPPER(code) = ?", strings.ToUpper(strings.TrimSpace(meta.PromoCode))).
				UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
				return err
			}
		}

		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &order, created, nil
}
