package dto

type CartItemRequest struct {
	ItemID *int `json:"itemId" validate:"required"`
}
