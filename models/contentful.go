package models

// ContentfulSys carries the source-assigned identity of an entry.
type ContentfulSys struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ContentfulFields maps onto the Product attribute subset the source owns.
type ContentfulFields struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Model    string  `json:"model"`
	Category string  `json:"category"`
	Color    string  `json:"color"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Stock    int     `json:"stock"`
}

// ContentfulEntry is one entry as returned by the Contentful entries API.
type ContentfulEntry struct {
	Sys    ContentfulSys    `json:"sys"`
	Fields ContentfulFields `json:"fields"`
}

// ContentfulListResponse is one page of entries from the source.
type ContentfulListResponse struct {
	Total int               `json:"total"`
	Skip  int               `json:"skip"`
	Limit int               `json:"limit"`
	Items []ContentfulEntry `json:"items"`
}

// ExternalProduct is the flattened entry shape exposed by the live proxy.
type ExternalProduct struct {
	ID        string  `json:"id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Model     string  `json:"model"`
	Category  string  `json:"category"`
	Color     string  `json:"color"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Stock     int     `json:"stock"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// ExternalProductList is the proxy response envelope.
type ExternalProductList struct {
	Data  []ExternalProduct `json:"data"`
	Total int               `json:"total"`
	Skip  int               `json:"skip"`
	Limit int               `json:"limit"`
}
