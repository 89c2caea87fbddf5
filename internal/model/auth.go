package model

type AccessToken struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type RegisterResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

func (r *RegisterResponse) AccessTokenInfo() string {
	return r.AccessToken
}

type LoginRequest struct {
	// Username also accepts an email address; any value containing '@'
	// is looked up as an email.
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

func (r *LoginResponse) AccessTokenInfo() string {
	return r.AccessToken
}

type RequestVerificationRequest struct{}

type RequestVerificationResponse struct{}

type VerifyEmailRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type VerifyEmailResponse struct{}

type RequestPasswordResetRequest struct {
	Email string `json:"email"`
}

type RequestPasswordResetResponse struct{}

type VerifyPasswordResetRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type VerifyPasswordResetResponse struct {
	UserID string `json:"-"`
}

func (r *VerifyPasswordResetResponse) SessionInfo() map[string]any {
	return map[string]any{"reset_user_id": r.UserID}
}

type ResetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ResetPasswordResponse struct{}

func (r *ResetPasswordResponse) SessionInfo() map[string]any {
	return map[string]any{"reset_user_id": nil}
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ChangePasswordResponse struct{}
