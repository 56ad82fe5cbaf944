package dto

import "time"

type ProductResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Category  string    `json:"category"`
	NewPrice  float64   `json:"new_price"`
	OldPrice  float64   `json:"old_price"`
	Date      time.Time `json:"date"`
	Available bool      `json:"available"`
}

type AddProductResponse struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Name    string `json:"name"`
}

type RemoveProductResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

type UploadResponse struct {
	Success  int    `json:"success"`
	ImageURL string `json:"image_url"`
}
