package auth

// Claims representa al owner autenticado por la sesión.
type Claims struct {
	UserID    string
	Email     string
	SessionID string
}
