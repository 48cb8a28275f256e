package api

import (
	"context"
	"net/http"

	"crickmart/internal/domain"
)

// LoginParams is the credentials payload for POST /auths/login.
type LoginParams struct {
	MobilePhone string `json:"mobilePhone"`
	Password    string `json:"password"`
}

// SignupParams is the registration payload for POST /auths/signup.
type SignupParams struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	MobilePhone  string `json:"mobilePhone"`
	Password     string `json:"password"`
	Eircode      string `json:"eircode"`
}

// AuthResult is the successful login response.
type AuthResult struct {
	AccessToken string      `json:"accessToken"`
	User        domain.User `json:"user"`
}

type authEnvelope struct {
	Data AuthResult `json:"data"`
}

type signupEnvelope struct {
	Data struct {
		User domain.User `json:"user"`
	} `json:"data"`
}

// Login exchanges credentials for an access token and user profile.
func (c *Client) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	var envelope authEnvelope
	if err := c.do(ctx, http.MethodPost, "/auths/login", params, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// Signup registers a new account. It does not authenticate; the caller is
// expected to log in afterwards.
func (c *Client) Signup(ctx context.Context, params SignupParams) (*domain.User, error) {
	var envelope signupEnvelope
	if err := c.do(ctx, http.MethodPost, "/auths/signup", params, &envelope); err != nil {
		return nil, err
	}
	user := envelope.Data.User
	return &user, nil
}
