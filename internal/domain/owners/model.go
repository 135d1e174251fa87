package owners

import "time"

// Owner es la cuenta que posee mascotas. El email es único (normalizado a minúsculas).
type Owner struct {
	ID    string
	Name  string
	Email string
	Phone string

	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}
