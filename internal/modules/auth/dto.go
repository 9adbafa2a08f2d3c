package auth

type RegisterRequest struct {
	ShopName string `json:"shop_name" binding:"required"`
	Slug     string `json:"slug" binding:"required,min=3,max=40"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	AccessToken string `json:"access_token"`
	UserID      int64  `json:"user_id"`
	TenantID    int64  `json:"tenant_id"`
	Role        string `json:"role"`
}
