package model

import "time"

// Activity represents one recorded inventory mutation.
type Activity struct {
	ID         int64     `json:"id"`
	Barcode    string    `json:"barcode"`
	Action     string    `json:"action"`
	Quantity   int       `json:"quantity"`
	Remaining  int       `json:"remaining"`
	OccurredAt time.Time `json:"occurred_at"`

	// Joined field (not always populated).
	ProductName string `json:"product_name,omitempty"`
}

// Activity actions.
const (
	ActionAdd = "add"
	ActionUse = "use"
)
