package domain

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	Birthdate      *time.Time `json:"birthdate,omitempty"`
	FavoriteMovies []string   `json:"favorite_movies"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// UserUpdate carries the fields replaced by a profile update.
// PasswordHash is already hashed by the caller.
type UserUpdate struct {
	Username     string
	Email        string
	PasswordHash string
	Birthdate    *time.Time
}

// HasFavorite reports whether movieID is in the user's favorites.
func (u *User) HasFavorite(movieID string) bool {
	for _, id := range u.FavoriteMovies {
		if id == movieID {
			return true
		}
	}
	return false
}
