package client

import "context"

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers an account and returns its ID. It does not log in.
func (c *Client) Signup(ctx context.Context, name, email, password string) (int64, error) {
	var res struct {
		UserID int64 `json:"userId"`
	}
	if err := c.post(ctx, "/api/auth/signup", credentials{Name: name, Email: email, Password: password}, &res); err != nil {
		return 0, err
	}
	return res.UserID, nil
}

// Login exchanges credentials for a token, which the client then sends on
// every request.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var res struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := c.post(ctx, "/api/auth/login", credentials{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	c.setToken(res.Token)
	return &res.User, nil
}
