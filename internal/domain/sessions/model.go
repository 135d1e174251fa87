package sessions

import "time"

// Session vive del lado del server; el cliente solo ve el ID en la cookie.
// Lleva tags json porque el adapter de Redis la guarda serializada.
type Session struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
