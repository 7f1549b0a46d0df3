package constants

// Roles
const (
	ROLE_ADMIN   = "ADMIN"
	ROLE_KITCHEN = "KITCHEN"
)

// Order lifecycle statuses
const (
	ORDER_PENDING   = "pending"
	ORDER_CONFIRMED = "confirmed"
	ORDER_PREPARING = "preparing"
	ORDER_READY     = "ready"
	ORDER_PICKED_UP = "picked_up"
	ORDER_CANCELLED = "cancelled"
)

// Payment statuses
const (
	PAYMENT_PAID    = "paid"
	PAYMENT_PENDING = "pending"
	PAYMENT_FAILED  = "failed"
)

// Promotion discount types
const (
	PROMO_PERCENT = "percent"
	PROMO_FIXED   = "fixed"
)

// Pricing
const (
	TAX_RATE      = 0.08875 // NYC sales tax
	PACKAGING_FEE = 1.50
)

// Catering event types accepted on consultation requests.
var CONSULTATION_EVENT_TYPES = []string{"wedding", "corporate", "birthday", "other"}

// An open order older than this is flagged urgent on the kitchen dashboard.
const URGENT_AFTER_MINUTES = 30

// Redis channel carrying kitchen dashboard events.
const KITCHEN_CHANNEL = "kitchen:orders"

// Shared messages
const (
	ERROR_INTERNAL_ERROR     = "Internal server error"
	MISSING_LOGIN_INPUT      = "Username and password are required"
	INVALID_USERNAME         = "Username does not exist"
	INVALID_PASSWORD         = "Incorrect password"
	ACCOUNT_NOT_ACTIVE       = "Account is deactivated"
	NOT_ADMIN                = "Insufficient permissions"
	DATA_INPUT_IS_NOT_NUMBER = "Parameter must be a number"
)
