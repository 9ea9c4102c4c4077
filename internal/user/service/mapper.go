package service

import "github.com/recipevault/backend/internal/user/domain"

// Profile is the outbound representation of a user. It deliberately has no
// password field.
type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toProfile(user domain.User) Profile {
	return Profile{
		Email: user.Email,
		Name:  user.Name,
	}
}
