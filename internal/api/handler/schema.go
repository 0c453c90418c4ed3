package handler

import (
	"time"

	"github.com/kraftflix/movie-api/internal/core/domain"
	"github.com/kraftflix/movie-api/internal/core/ports"
)

const birthdateLayout = "2006-01-02"

// userRequest is the body of registration and profile update.
type userRequest struct {
	Username  string `json:"username"  validate:"required,min=5,alphanum"`
	Password  string `json:"password"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Birthdate string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
}

func (r userRequest) toInput() ports.UserInput {
	in := ports.UserInput{
		Username: r.Username,
		Password: r.Password,
		Email:    r.Email,
	}
	if r.Birthdate != "" {
		// Already checked by the datetime rule.
		if t, err := time.Parse(birthdateLayout, r.Birthdate); err == nil {
			in.Birthdate = &t
		}
	}
	return in
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}
