package models

// Product is the catalog DTO returned by the commerce backend. The
// storefront never stores these; it renders them and captures a ProductRef
// into the cart on add.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Image       string   `json:"image,omitempty"`
	Category    string   `json:"category,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	InStock     bool     `json:"in_stock"`
}

// ProductList is a paginated catalog page from the backend.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}
