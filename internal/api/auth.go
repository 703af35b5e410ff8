package api

import "context"

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type ResetPasswordData struct {
	Email           string `json:"email"`
	ResetCode       string `json:"resetCode"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ChangePasswordData struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResponse
	if err := c.post(ctx, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var out messageResponse
	if err := c.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ResetPassword(ctx context.Context, data ResetPasswordData) (string, error) {
	var out messageResponse
	if err := c.post(ctx, "/auth/reset-password", data, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ChangePassword(ctx context.Context, data ChangePasswordData) (string, error) {
	var out messageResponse
	if err := c.post(ctx, "/auth/change-password", data, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
