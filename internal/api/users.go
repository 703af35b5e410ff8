package api

import "context"

type RegisterData struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

type RegisterResponse struct {
	User
	Message string `json:"message"`
}

func (c *Client) Register(ctx context.Context, data RegisterData) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.post(ctx, "/users/register", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyEmail(ctx context.Context, email, code string) (string, error) {
	body := map[string]string{"email": email, "code": code}
	var out messageResponse
	if err := c.post(ctx, "/users/verify-email", body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ResendVerification(ctx context.Context, email string) (string, error) {
	var out messageResponse
	if err := c.post(ctx, "/users/resend-verification", map[string]string{"email": email}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := c.get(ctx, "/users/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile patches only the given fields; callers send the minimal diff.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (*User, error) {
	var out User
	if err := c.patch(ctx, "/users/profile", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
