package retention

import "fmt"

// InvalidPolicyError reports a negative retention count.
type InvalidPolicyError struct {
	Rule  Rule
	Value int
}

func (e *InvalidPolicyError) Error() string {
	return fmt.Sprintf("invalid retention policy: %s must not be negative (got %d)", e.Rule, e.Value)
}

// OrderError reports the first record that breaks strictly descending
// timestamp order.
type OrderError struct {
	Index int
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("records not in strictly descending order at index %d", e.Index)
}
