package dto

// RegisterRequest alta de usuario.
type RegisterRequest struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Name      string   `json:"name"`
	Role      string   `json:"role"` // operador | supervisor | admin
	ClientIDs []string `json:"client_ids,omitempty"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse representación pública de un usuario.
type UserResponse struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	ClientIDs []string `json:"client_ids,omitempty"`
}

// LoginResponse token emitido tras autenticarse.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
