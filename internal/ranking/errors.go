package ranking

import "fmt"

// InvalidWeightError reports a scoring constant outside its allowed range.
type InvalidWeightError struct {
	Name  string
	Value float64
}

func (e *InvalidWeightError) Error() string {
	return fmt.Sprintf("scoring: %s must be non-negative, got %v", e.Name, e.Value)
}
