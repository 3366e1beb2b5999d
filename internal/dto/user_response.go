package dto

type TokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	IsSeller  bool    `json:"isArtisan"`
	Avatar    *string `json:"avatar"`
	Bio       *string `json:"bio"`
	CreatedAt int64   `json:"createdAt"`
}
