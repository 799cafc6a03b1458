package dto

// HeavyProductRequest adds a heavy product name fragment.
type HeavyProductRequest struct {
	Name string `json:"name"`
}

// HeavyProductResponse describes one configured heavy product.
type HeavyProductResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
