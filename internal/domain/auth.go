package domain

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/crypto"
	"github.com/agora-lab/backend/pkg/errorx"
	"github.com/agora-lab/backend/pkg/mailer"
	"github.com/agora-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	RequestVerification(ctx context.Context, req *model.RequestVerificationRequest) (*model.RequestVerificationResponse, error)
	VerifyEmail(ctx context.Context, req *model.VerifyEmailRequest) (*model.VerifyEmailResponse, error)
	RequestPasswordReset(ctx context.Context, req *model.RequestPasswordResetRequest) (*model.RequestPasswordResetResponse, error)
	VerifyPasswordReset(ctx context.Context, req *model.VerifyPasswordResetRequest) (*model.VerifyPasswordResetResponse, error)
	ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) (*model.ResetPasswordResponse, error)
	ChangePassword(ctx context.Context, req *model.ChangePasswordRequest) (*model.ChangePasswordResponse, error)
}

type authDomain struct {
	userRepo         repository.UserRepository
	verificationRepo repository.EmailVerificationRepository
	resetRepo        repository.PasswordResetRepository
	mailer           mailer.Mailer
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	verificationRepo repository.EmailVerificationRepository,
	resetRepo repository.PasswordResetRepository,
	mailer mailer.Mailer,
) AuthDomain {
	return &authDomain{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		resetRepo:        resetRepo,
		mailer:           mailer,
	}
}

func (d *authDomain) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if err := checkUsername(username); err != nil {
		return nil, err
	}

	if !strings.Contains(email, "@") {
		return nil, errorx.New(errorx.BadRequest, "Invalid email address")
	}

	if err := checkPassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	if _, err := d.userRepo.GetByName(ctx, username); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This username has been registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This email has been registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash the password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		Name:         username,
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
		LastIP:       requestIP(ctx),
	}
	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	verifyToken := crypto.GenerateDateToken(now)
	err = d.verificationRepo.Upsert(ctx, &entity.EmailVerification{
		UserID:    user.ID,
		Token:     verifyToken,
		CreatedAt: now,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save the verification token: %v", err)
		return nil, errorx.Unknown
	}

	cfg := xcontext.Configs(ctx)
	link := fmt.Sprintf("%s/verifyEmail?user_id=%s&token=%s",
		cfg.ApiServer.SiteURL, user.ID, verifyToken)
	body := fmt.Sprintf("Hi %s,\n\nWelcome to %s. Please verify your email address by opening this link:\n%s\n",
		user.Name, cfg.ApiServer.SiteURL, link)
	if err := d.mailer.SendMail(ctx, user.Email, "Welcome, please verify your email address", body); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot send the welcome email: %v", err)
		return nil, errorx.Unknown
	}

	token, err := generateAccessToken(ctx, user)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{
		User:        model.ConvertUser(user, true),
		AccessToken: token,
	}, nil
}

func (d *authDomain) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty username or password")
	}

	var user *entity.User
	var err error
	if strings.Contains(req.Username, "@") {
		user, err = d.userRepo.GetByEmail(ctx, req.Username)
	} else {
		user, err = d.userRepo.GetByName(ctx, req.Username)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid username or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if err := crypto.ComparePassword(user.PasswordHash, req.Password); err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid username or password")
	}

	if !user.IsActive {
		return nil, errorx.New(errorx.PermissionDenied, "This account has been deactivated")
	}

	err = d.userRepo.UpdateByID(ctx, user.ID, map[string]any{"last_ip": requestIP(ctx)})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot record the login ip: %v", err)
	}

	token, err := generateAccessToken(ctx, user)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		User:        model.ConvertUser(user, true),
		AccessToken: token,
	}, nil
}

func (d *authDomain) RequestVerification(
	ctx context.Context, req *model.RequestVerificationRequest,
) (*model.RequestVerificationResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.EmailVerified {
		return nil, errorx.New(errorx.BadRequest, "This email has already been verified")
	}

	cfg := xcontext.Configs(ctx)
	now := time.Now()

	last, err := d.verificationRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the last verification: %v", err)
		return nil, errorx.Unknown
	}

	if err == nil && now.Sub(last.CreatedAt) < cfg.Forum.VerifyEmailEvery {
		return nil, errorx.New(errorx.TooManyRequests,
			"Please wait for a while before requesting a new verification email")
	}

	token := crypto.GenerateDateToken(now)
	err = d.verificationRepo.Upsert(ctx, &entity.EmailVerification{
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save the verification token: %v", err)
		return nil, errorx.Unknown
	}

	link := fmt.Sprintf("%s/verifyEmail?user_id=%s&token=%s", cfg.ApiServer.SiteURL, userID, token)
	body := fmt.Sprintf("Hi %s,\n\nPlease verify your email address by opening this link:\n%s\n",
		user.Name, link)
	if err := d.mailer.SendMail(ctx, user.Email, "Verify your email address", body); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot send the verification email: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RequestVerificationResponse{}, nil
}

func (d *authDomain) VerifyEmail(ctx context.Context, req *model.VerifyEmailRequest) (*model.VerifyEmailResponse, error) {
	verification, err := d.verificationRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Invalid verification link")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the verification token: %v", err)
		return nil, errorx.Unknown
	}

	if req.Token == "" || verification.Token != req.Token {
		return nil, errorx.New(errorx.BadRequest, "Invalid verification link")
	}

	err = xcontext.WithDBTransaction(ctx, func(ctx context.Context) error {
		err := d.userRepo.UpdateByID(ctx, req.UserID, map[string]any{"email_verified": true})
		if err != nil {
			return err
		}

		// The link is single-use.
		return d.verificationRepo.DeleteByUserID(ctx, req.UserID)
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot verify the email: %v", err)
		return nil, errorx.Unknown
	}

	return &model.VerifyEmailResponse{}, nil
}

func (d *authDomain) RequestPasswordReset(
	ctx context.Context, req *model.RequestPasswordResetRequest,
) (*model.RequestPasswordResetResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "This email has not been registered")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	cfg := xcontext.Configs(ctx)
	now := time.Now()

	last, err := d.resetRepo.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the last reset request: %v", err)
		return nil, errorx.Unknown
	}

	if err == nil && now.Sub(last.CreatedAt) < cfg.Forum.ResetRequestEvery {
		return nil, errorx.New(errorx.TooManyRequests,
			"Please wait for a while before requesting a new reset email")
	}

	token := crypto.GenerateDateToken(now)
	err = d.resetRepo.Upsert(ctx, &entity.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		CreatedAt: now,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save the reset token: %v", err)
		return nil, errorx.Unknown
	}

	link := fmt.Sprintf("%s/verifyPasswordReset?user_id=%s&token=%s",
		cfg.ApiServer.SiteURL, user.ID, token)
	body := fmt.Sprintf("Hi %s,\n\nYou can reset your password by opening this link:\n%s\n",
		user.Name, link)
	if err := d.mailer.SendMail(ctx, user.Email, "Reset your password", body); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot send the reset email: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RequestPasswordResetResponse{}, nil
}

func (d *authDomain) VerifyPasswordReset(
	ctx context.Context, req *model.VerifyPasswordResetRequest,
) (*model.VerifyPasswordResetResponse, error) {
	reset, err := d.resetRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Invalid reset link")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the reset token: %v", err)
		return nil, errorx.Unknown
	}

	if req.Token == "" || reset.Token != req.Token {
		return nil, errorx.New(errorx.BadRequest, "Invalid reset link")
	}

	days := xcontext.Configs(ctx).Forum.ResetWindowDays
	if dateInt(time.Now())-dateInt(reset.CreatedAt) >= days {
		return nil, errorx.New(errorx.BadRequest, "This reset link has expired")
	}

	return &model.VerifyPasswordResetResponse{UserID: req.UserID}, nil
}

func (d *authDomain) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) (*model.ResetPasswordResponse, error) {
	session, err := xcontext.SessionStore(ctx).Get(xcontext.HTTPRequest(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the session: %v", err)
		return nil, errorx.Unknown
	}

	userID, ok := session.Values["reset_user_id"].(string)
	if !ok || userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to verify the reset link before")
	}

	if err := checkPassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash the password: %v", err)
		return nil, errorx.Unknown
	}

	err = xcontext.WithDBTransaction(ctx, func(ctx context.Context) error {
		err := d.userRepo.UpdateByID(ctx, userID, map[string]any{"password_hash": hashed})
		if err != nil {
			return err
		}

		return d.resetRepo.DeleteByUserID(ctx, userID)
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset the password: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ResetPasswordResponse{}, nil
}

func (d *authDomain) ChangePassword(ctx context.Context, req *model.ChangePasswordRequest) (*model.ChangePasswordResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if err := crypto.ComparePassword(user.PasswordHash, req.OldPassword); err != nil {
		return nil, errorx.New(errorx.BadRequest, "The old password is incorrect")
	}

	if err := checkPassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash the password: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.UpdateByID(ctx, user.ID, map[string]any{"password_hash": hashed}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot change the password: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ChangePasswordResponse{}, nil
}

func generateAccessToken(ctx context.Context, user *entity.User) (string, error) {
	return xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:      user.ID,
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
	})
}

func checkUsername(username string) error {
	if len(username) < 2 || len(username) > 16 {
		return errorx.New(errorx.BadRequest, "Username must be from 2 to 16 characters")
	}

	if strings.HasPrefix(username, "_") {
		return errorx.New(errorx.BadRequest, "Username cannot begin with an underscore")
	}

	if strings.Contains(username, "@") {
		return errorx.New(errorx.BadRequest, "Username cannot contain the @ character")
	}

	return nil
}

func checkPassword(password, confirm string) error {
	if len(password) < 6 {
		return errorx.New(errorx.BadRequest, "Password must be at least 6 characters")
	}

	if password != confirm {
		return errorx.New(errorx.BadRequest, "Two passwords do not match")
	}

	return nil
}

// dateInt flattens a timestamp to its calendar day as an integer, so
// the reset window counts days on the calendar rather than full
// 24-hour periods.
func dateInt(t time.Time) int {
	n, _ := strconv.Atoi(t.Format("20060102"))
	return n
}

func requestIP(ctx context.Context) string {
	r := xcontext.HTTPRequest(ctx)
	if r == nil {
		return ""
	}

	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}

	return host
}
