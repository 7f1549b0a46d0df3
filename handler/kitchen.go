package handler

import (
	"errors"
	"fmt"
	"time"

	"nyn_restaurant/constants"
	"nyn_restaurant/database"
	"nyn_restaurant/helper"
	"nyn_restaurant/model"
	"nyn_restaurant/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetKitchenOrders lists orders for the dashboard, newest first, with the
// urgency flag computed from wall-clock time on every read.
func GetKitchenOrders(c *fiber.Ctx) error {
	db := database.DB

	query := db.Model(&model.Order{}).Preload("Items")
	if status := c.Query("status"); status != "" {
		if !helper.IsKnownStatus(status) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown status filter", nil)
		}
		query = query.Where("status = ?", status)
	} else if c.Query("open") == "true" {
		query = query.Where("status NOT IN ?", []string{constants.ORDER_PICKED_UP, constants.ORDER_CANCELLED})
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count orders", err)
	}

	var pagination model.Pagination
	if limit := c.QueryInt("limit"); limit > 0 {
		page := c.QueryInt("page", 1)
		pagination = model.Pagination{Limit: &limit, Page: &page}
	}

	var orders []model.Order
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load orders", err)
	}

	now := time.Now()
	rows := []map[string]interface{}{}
	for i := range orders {
		order := &orders[i]
		next, hasNext := helper.NextStatus(order.Status)
		row := map[string]interface{}{
			"id":             order.ID,
			"orderNumber":    order.OrderNumber,
			"status":         order.Status,
			"customerName":   order.FirstName + " " + order.LastName,
			"phone":          order.Phone,
			"items":          order.Items,
			"total":          order.Total,
			"pickupTime":     order.PickupTime,
			"instructions":   order.Instructions,
			"createdAt":      order.CreatedAt,
			"elapsedMinutes": int(now.Sub(order.CreatedAt).Minutes()),
			"urgent":         helper.IsUrgent(order, now),
			"canCancel":      !helper.IsTerminalStatus(order.Status),
		}
		if hasNext {
			row["nextStatus"] = next
		}
		rows = append(rows, row)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       rows,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}

// UpdateOrderStatus applies a dashboard transition. Legality is enforced here,
// not by which buttons the dashboard renders: only the fixed next step or a
// cancel from a non-terminal state is accepted.
func UpdateOrderStatus(c *fiber.Ctx) error {
	orderId, err := c.ParamsInt("orderId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	input, ok := c.Locals("statusInput").(model.UpdateOrderStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing status input"))
	}

	var order model.Order
	if err := database.DB.Preload("Items").First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load order", err)
	}

	if !helper.CanTransition(order.Status, input.Status) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest,
			fmt.Sprintf("Cannot move order from %s to %s", order.Status, input.Status), nil)
	}

	updates := map[string]interface{}{"status": input.Status}
	if input.Status == constants.ORDER_CANCELLED {
		now := time.Now()
		updates["cancelled_at"] = &now
	}
	if err := database.DB.Model(&order).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update order", err)
	}
	order.Status = input.Status

	PublishKitchenEvent("status_changed", &order)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"id":          order.ID,
		"orderNumber": order.OrderNumber,
		"status":      order.Status,
	})
}

// GetKitchenStats aggregates the dashboard header numbers: per-status counts,
// average wait over open orders, urgent count, and same-day revenue from
// picked-up orders with a growth comparison against yesterday.
func GetKitchenStats(c *fiber.Ctx) error {
	db := database.DB

	type Stats struct {
		Pending   int64 `json:"pending"`
		Confirmed int64 `json:"confirmed"`
		Preparing int64 `json:"preparing"`
		Ready     int64 `json:"ready"`
		PickedUp  int64 `json:"pickedUp"`
		Cancelled int64 `json:"cancelled"`

		OpenOrders     int64   `json:"openOrders"`
		UrgentOrders   int64   `json:"urgentOrders"`
		AvgWaitMinutes float64 `json:"avgWaitMinutes"`

		TodayRevenue  float64 `json:"todayRevenue"`
		TodayOrders   int64   `json:"todayOrders"`
		RevenueGrowth float64 `json:"revenueGrowth"` // %
	}

	var stats Stats
	counts := []struct {
		status string
		dst    *int64
	}{
		{constants.ORDER_PENDING, &stats.Pending},
		{constants.ORDER_CONFIRMED, &stats.Confirmed},
		{constants.ORDER_PREPARING, &stats.Preparing},
		{constants.ORDER_READY, &stats.Ready},
		{constants.ORDER_PICKED_UP, &stats.PickedUp},
		{constants.ORDER_CANCELLED, &stats.Cancelled},
	}
	for _, count := range counts {
		db.Model(&model.Order{}).Where("status = ?", count.status).Count(count.dst)
	}
	stats.OpenOrders = stats.Pending + stats.Confirmed + stats.Preparing + stats.Ready

	openStatuses := []string{constants.ORDER_PENDING, constants.ORDER_CONFIRMED, constants.ORDER_PREPARING, constants.ORDER_READY}
	db.Model(&model.Order{}).
		Where("status IN ? AND created_at < ?", openStatuses, time.Now().Add(-constants.URGENT_AFTER_MINUTES*time.Minute)).
		Count(&stats.UrgentOrders)

	db.Raw(`
        SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (NOW() - created_at)) / 60), 0)
        FROM orders
        WHERE status IN ?
    `, openStatuses).Scan(&stats.AvgWaitMinutes)
	stats.AvgWaitMinutes = helper.Round2(stats.AvgWaitMinutes)

	today := time.Now()
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)

	db.Raw(`
        SELECT COALESCE(SUM(total), 0)
        FROM orders
        WHERE status = ? AND created_at >= ? AND created_at < ?
    `, constants.ORDER_PICKED_UP, todayStart, todayEnd).Scan(&stats.TodayRevenue)

	db.Model(&model.Order{}).
		Where("created_at >= ? AND created_at < ?", todayStart, todayEnd).
		Count(&stats.TodayOrders)

	var yesterdayRevenue float64
	db.Raw(`
        SELECT COALESCE(SUM(total), 0)
        FROM orders
        WHERE status = ? AND created_at >= ? AND created_at < ?
    `, constants.ORDER_PICKED_UP, todayStart.AddDate(0, 0, -1), todayStart).Scan(&yesterdayRevenue)

	if yesterdayRevenue > 0 {
		stats.RevenueGrowth = helper.Round2((stats.TodayRevenue - yesterdayRevenue) / yesterdayRevenue * 100)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}
