package dto

type ProductRequest struct {
	Name     string  `json:"name" validate:"required"`
	Image    string  `json:"image" validate:"required"`
	Category string  `json:"category" validate:"required"`
	NewPrice float64 `json:"new_price" validate:"required"`
	OldPrice float64 `json:"old_price" validate:"required"`
}

type RemoveProductRequest struct {
	ID int64 `json:"id"`
}
