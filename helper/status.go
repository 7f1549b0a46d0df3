package helper

import (
	"time"

	"nyn_restaurant/constants"
	"nyn_restaurant/model"
)

// statusSuccessor is the only forward path the kitchen can take.
var statusSuccessor = map[string]string{
	constants.ORDER_PENDING:   constants.ORDER_CONFIRMED,
	constants.ORDER_CONFIRMED: constants.ORDER_PREPARING,
	constants.ORDER_PREPARING: constants.ORDER_READY,
	constants.ORDER_READY:     constants.ORDER_PICKED_UP,
}

func NextStatus(current string) (string, bool) {
	next, ok := statusSuccessor[current]
	return next, ok
}

func IsTerminalStatus(status string) bool {
	return status == constants.ORDER_PICKED_UP || status == constants.ORDER_CANCELLED
}

func IsKnownStatus(status string) bool {
	switch status {
	case constants.ORDER_PENDING, constants.ORDER_CONFIRMED, constants.ORDER_PREPARING,
		constants.ORDER_READY, constants.ORDER_PICKED_UP, constants.ORDER_CANCELLED:
		return true
	}
	return false
}

// CanTransition validates a requested status change: either the single next
// step, or cancel from any non-terminal state.
func CanTransition(from, to string) bool {
	if to == constants.ORDER_CANCELLED {
		return !IsTerminalStatus(from)
	}
	next, ok := statusSuccessor[from]
	return ok && next == to
}

// IsUrgent flags open orders waiting longer than the kitchen threshold.
func IsUrgent(order *model.Order, now time.Time) bool {
	if IsTerminalStatus(order.Status) {
		return false
	}
	return now.Sub(order.CreatedAt) > constants.URGENT_AFTER_MINUTES*time.Minute
}
