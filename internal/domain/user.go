package domain

import "time"

// GuestEmailDomain is appended to a guest's phone number to form the
// deterministic pseudo-email that reunites repeat guest checkouts.
const GuestEmailDomain = "guest.local"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the single identity record for registered customers, guests
// (phone-derived pseudo-email) and anonymous sessions alike. Guest and
// anonymous users are upgraded in place, never replaced.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsAnonymous  bool      `json:"isAnonymous"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Session is the per-request identity tuple supplied by the session
// provider. Nil means an unauthenticated request.
type Session struct {
	UserID      string
	IsAnonymous bool
	Role        string
}

// IsAdmin reports whether the session belongs to an admin user.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
