package dto

type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}
