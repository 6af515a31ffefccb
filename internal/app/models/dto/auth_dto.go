package dto

// LoginRequest carries login form fields; accepted as form data or JSON.
type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// RegisterRequest carries the shared registration form fields for students
// and companies.
type RegisterRequest struct {
	Name     string `form:"name" json:"name" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// SessionUser is the public shape of the authenticated account.
type SessionUser struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"Alice"`
	Email string `json:"email" example:"a@x.com"`
	Role  string `json:"role" example:"student"`
}
