package exchange

import "fmt"

// APIError is a venue rejection surfaced from the order-placement
// boundary. Transient market-data failures never use this type.
type APIError struct {
	Message string
	Code    int
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("exchange API error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("exchange API error: %s", e.Message)
}
