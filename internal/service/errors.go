package service

import "errors"

// 服务层哨兵错误，由 handler 层映射为统一响应码
var (
	ErrNotFound           = errors.New("resource not found")
	ErrSlugExists         = errors.New("slug already exists")
	ErrCategoryInUse      = errors.New("category has products")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrUserDisabled       = errors.New("user disabled")
	ErrProfileEmpty       = errors.New("profile has no fields to update")

	ErrProductInvalid      = errors.New("invalid product input")
	ErrInvalidCartItem     = errors.New("invalid cart item")
	ErrProductNotAvailable = errors.New("product not available")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrInsufficientStock   = errors.New("insufficient stock")

	ErrCheckoutInvalid       = errors.New("checkout validation failed")
	ErrDuplicateSubmission   = errors.New("duplicate order submission")
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderFetchFailed      = errors.New("order fetch failed")
	ErrOrderCreateFailed     = errors.New("order create failed")
	ErrOrderUpdateFailed     = errors.New("order update failed")
	ErrOrderStatusInvalid    = errors.New("order status transition not allowed")
	ErrOrderCancelNotAllowed = errors.New("order cancel not allowed")

	ErrTicketNotFound       = errors.New("ticket not found")
	ErrTicketClosed         = errors.New("ticket closed for replies")
	ErrTicketStatusInvalid  = errors.New("ticket status transition not allowed")
	ErrTicketMessageEmpty   = errors.New("ticket message empty")
	ErrTicketSubjectInvalid = errors.New("ticket subject empty or too long")

	ErrTutorialNotFound = errors.New("tutorial not found")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
