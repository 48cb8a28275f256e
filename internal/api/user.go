package api

import (
	"context"
	"net/http"

	"crickmart/internal/domain"
)

// UserUpdateParams is the payload for PUT /users/update. Password fields are
// optional; both must be set to change the password.
type UserUpdateParams struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Eircode      string `json:"eircode"`
	OldPassword  string `json:"oldPassword,omitempty"`
	Password     string `json:"password,omitempty"`
}

// UpdateUser sends a profile patch and returns the server's authoritative
// user record.
func (c *Client) UpdateUser(ctx context.Context, params UserUpdateParams) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPut, "/users/update", params, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
