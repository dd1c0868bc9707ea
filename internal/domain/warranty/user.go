package warranty

import "time"

// DefaultCity is assigned to new accounts.
const DefaultCity = "Mumbai"

// User owns products and notifications.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	City         string    `json:"city"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is a user together with usage counters.
type Profile struct {
	User
	ProductCount      int64 `json:"productCount"`
	NotificationCount int64 `json:"notificationCount"`
}

// ProfilePatch updates name and city. Nil fields are left unchanged.
type ProfilePatch struct {
	Name *string `json:"name"`
	City *string `json:"city"`
}
