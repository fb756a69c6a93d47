package clmm

import "fmt"

// RangeError reports a value outside its legal domain. No function in this
// package clamps; out-of-domain inputs always surface as a RangeError.
type RangeError struct {
	Name  string // which quantity was out of range
	Value string
	Min   string
	Max   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %s out of range [%s, %s]", e.Name, e.Value, e.Min, e.Max)
}

// OverflowError reports a result that does not fit the target width.
type OverflowError struct {
	Op    string
	Value string
	Width int // bits of the target type
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s: result %s overflows uint%d", e.Op, e.Value, e.Width)
}

// RoundingModeError reports a Rounding argument that is neither RoundDown
// nor RoundUp. The zero value of Rounding is deliberately invalid so that a
// forgotten rounding mode fails loudly instead of picking a direction.
type RoundingModeError struct {
	Mode Rounding
}

func (e *RoundingModeError) Error() string {
	return fmt.Sprintf("invalid rounding mode %d", e.Mode)
}
