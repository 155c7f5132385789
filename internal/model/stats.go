package model

// Stats is the aggregate inventory overview for the statistics page.
type Stats struct {
	TotalItems int             `json:"total_items"`
	TotalUnits int             `json:"total_units"`
	LowStock   int             `json:"low_stock"`
	OutOfStock int             `json:"out_of_stock"`
	Categories []CategoryCount `json:"categories"`
}

// CategoryCount is the number of distinct items in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
