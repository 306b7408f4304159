package domain

import "strings"

type OrderStatus string

const (
	StatusAll        OrderStatus = "all"
	StatusIncomplete OrderStatus = "incomplete"
	StatusComplete   OrderStatus = "complete"
)

// ParseOrderStatus never fails: anything other than "incomplete" or "complete" means all orders.
func ParseOrderStatus(s string) OrderStatus {
	switch OrderStatus(s) {
	case StatusIncomplete:
		return StatusIncomplete
	case StatusComplete:
		return StatusComplete
	default:
		return StatusAll
	}
}

// ParseIncludeProducts defaults to true only when the flag is absent; a present but
// empty value is false.
func ParseIncludeProducts(s string, present bool) bool {
	if !present {
		return true
	}
	return strings.EqualFold(s, "true")
}
