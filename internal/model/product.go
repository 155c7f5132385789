package model

// Product is normalized product metadata from the remote product database.
// Fields missing from the remote response are filled with the Unknown*
// placeholders at the lookup boundary, so downstream code never sees empty
// required fields.
type Product struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	ImageURL string `json:"image_url"`
	Category string `json:"category"`
}

// Placeholders for fields the remote database doesn't know.
const (
	UnknownProduct  = "Unknown Product"
	UnknownBrand    = "Unknown Brand"
	UnknownCategory = "Unknown Category"
)

// ManualCategory marks items entered without a successful lookup.
const ManualCategory = "Manual Entry"
