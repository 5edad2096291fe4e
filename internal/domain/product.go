package domain

// Product is a single extracted marketplace listing.
type Product struct {
	Name         string   `json:"name"`
	ImageURLs    []string `json:"path_img"`    // Full-resolution carousel images, page order
	SourceURL    string   `json:"current_url"` // URL the record was extracted from
	Price        string   `json:"price"`
	Seller       string   `json:"seller"`
	ShippingCost string   `json:"shipping_cost"`
}
