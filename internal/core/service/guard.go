package service

import "github.com/kraftflix/movie-api/internal/core/domain"

// Authorize allows access to an owned resource only when the authenticated
// user is the owner named in the request. There are no roles or overrides.
func Authorize(user *domain.User, owner string) error {
	if user == nil || owner == "" || user.Username != owner {
		return domain.ErrPermissionDenied
	}
	return nil
}
