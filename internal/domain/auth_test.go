package domain

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/crypto"
	"github.com/agora-lab/backend/pkg/testutil"
	"github.com/agora-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newAuthDomainForTest(mockMailer *testutil.MockMailer) *authDomain {
	return &authDomain{
		userRepo:         repository.NewUserRepository(),
		verificationRepo: repository.NewEmailVerificationRepository(),
		resetRepo:        repository.NewPasswordResetRepository(),
		mailer:           mockMailer,
	}
}

func Test_authDomain_Register(t *testing.T) {
	ctx := testutil.MockContext()
	mockMailer := &testutil.MockMailer{}
	d := newAuthDomainForTest(mockMailer)

	resp, err := d.Register(ctx, &model.RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", resp.User.Name)
	require.NotEmpty(t, resp.AccessToken)

	// Registration issues a verification token and mails the link.
	require.Len(t, mockMailer.Sent, 1)
	require.Equal(t, "alice@example.com", mockMailer.Sent[0].To)
	verification, err := d.verificationRepo.GetByUserID(ctx, resp.User.ID)
	require.NoError(t, err)
	require.Contains(t, mockMailer.Sent[0].Body, verification.Token)

	// The token authenticates the new user.
	info, err := xcontext.TokenEngine(ctx).Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, info.ID)

	// Both the username and the email are unique.
	_, err = d.Register(ctx, &model.RegisterRequest{
		Username:        "alice",
		Email:           "other@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.Error(t, err)
	require.Equal(t, "This username has been registered", err.Error())

	_, err = d.Register(ctx, &model.RegisterRequest{
		Username:        "alice2",
		Email:           "alice@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.Error(t, err)
	require.Equal(t, "This email has been registered", err.Error())
}

func Test_authDomain_Register_Validation(t *testing.T) {
	ctx := testutil.MockContext()
	d := newAuthDomainForTest(&testutil.MockMailer{})

	testcases := []struct {
		name    string
		req     *model.RegisterRequest
		wantErr string
	}{
		{
			name: "too short username",
			req: &model.RegisterRequest{
				Username: "a", Email: "a@example.com",
				Password: "secret1", ConfirmPassword: "secret1",
			},
			wantErr: "Username must be from 2 to 16 characters",
		},
		{
			name: "too long username",
			req: &model.RegisterRequest{
				Username: "aaaaaaaaaaaaaaaaa", Email: "a@example.com",
				Password: "secret1", ConfirmPassword: "secret1",
			},
			wantErr: "Username must be from 2 to 16 characters",
		},
		{
			name: "leading underscore",
			req: &model.RegisterRequest{
				Username: "_alice", Email: "a@example.com",
				Password: "secret1", ConfirmPassword: "secret1",
			},
			wantErr: "Username cannot begin with an underscore",
		},
		{
			name: "at sign in username",
			req: &model.RegisterRequest{
				Username: "ali@ce", Email: "a@example.com",
				Password: "secret1", ConfirmPassword: "secret1",
			},
			wantErr: "Username cannot contain the @ character",
		},
		{
			name: "invalid email",
			req: &model.RegisterRequest{
				Username: "alice", Email: "not-an-email",
				Password: "secret1", ConfirmPassword: "secret1",
			},
			wantErr: "Invalid email address",
		},
		{
			name: "too short password",
			req: &model.RegisterRequest{
				Username: "alice", Email: "a@example.com",
				Password: "12345", ConfirmPassword: "12345",
			},
			wantErr: "Password must be at least 6 characters",
		},
		{
			name: "mismatched passwords",
			req: &model.RegisterRequest{
				Username: "alice", Email: "a@example.com",
				Password: "secret1", ConfirmPassword: "secret2",
			},
			wantErr: "Two passwords do not match",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := d.Register(ctx, tc.req)
			require.Error(t, err)
			require.Equal(t, tc.wantErr, err.Error())
		})
	}
}

func Test_authDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()
	d := newAuthDomainForTest(&testutil.MockMailer{})

	hashed, err := crypto.HashPassword("secret1")
	require.NoError(t, err)
	user, err := testutil.SampleUser(ctx, &entity.User{
		Name:         "alice",
		Email:        "alice@example.com",
		PasswordHash: hashed,
	})
	require.NoError(t, err)

	// Login by username.
	resp, err := d.Login(ctx, &model.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, user.ID, resp.User.ID)

	// Login by email.
	resp, err = d.Login(ctx, &model.LoginRequest{Username: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, user.ID, resp.User.ID)

	// Wrong password and unknown user fail in the same way.
	_, err = d.Login(ctx, &model.LoginRequest{Username: "alice", Password: "wrong"})
	require.Error(t, err)
	require.Equal(t, "Invalid username or password", err.Error())

	_, err = d.Login(ctx, &model.LoginRequest{Username: "nobody", Password: "secret1"})
	require.Error(t, err)
	require.Equal(t, "Invalid username or password", err.Error())
}

func Test_authDomain_Login_DeactivatedUser(t *testing.T) {
	ctx := testutil.MockContext()
	d := newAuthDomainForTest(&testutil.MockMailer{})

	hashed, err := crypto.HashPassword("secret1")
	require.NoError(t, err)
	_, err = testutil.SampleUser(ctx, &entity.User{Name: "alice", PasswordHash: hashed})
	require.NoError(t, err)

	err = xcontext.DB(ctx).Model(&entity.User{}).
		Where("name=?", "alice").
		Update("is_active", false).Error
	require.NoError(t, err)

	_, err = d.Login(ctx, &model.LoginRequest{Username: "alice", Password: "secret1"})
	require.Error(t, err)
	require.Equal(t, "This account has been deactivated", err.Error())
}

func Test_authDomain_EmailVerification(t *testing.T) {
	ctx := testutil.MockContext()
	mockMailer := &testutil.MockMailer{}
	d := newAuthDomainForTest(mockMailer)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	userCtx := xcontext.WithRequestUserID(ctx, user.ID)

	_, err = d.RequestVerification(userCtx, &model.RequestVerificationRequest{})
	require.NoError(t, err)
	require.Len(t, mockMailer.Sent, 1)
	require.Equal(t, user.Email, mockMailer.Sent[0].To)

	// A second request within the cooldown is rejected.
	_, err = d.RequestVerification(userCtx, &model.RequestVerificationRequest{})
	require.Error(t, err)
	require.Equal(t,
		"Please wait for a while before requesting a new verification email", err.Error())

	verification, err := d.verificationRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)

	// A wrong token does not verify.
	_, err = d.VerifyEmail(ctx, &model.VerifyEmailRequest{
		UserID: user.ID,
		Token:  "wrong",
	})
	require.Error(t, err)
	require.Equal(t, "Invalid verification link", err.Error())

	_, err = d.VerifyEmail(ctx, &model.VerifyEmailRequest{
		UserID: user.ID,
		Token:  verification.Token,
	})
	require.NoError(t, err)

	gotUser, err := d.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, gotUser.EmailVerified)

	// The link is single-use.
	_, err = d.VerifyEmail(ctx, &model.VerifyEmailRequest{
		UserID: user.ID,
		Token:  verification.Token,
	})
	require.Error(t, err)
	require.Equal(t, "Invalid verification link", err.Error())

	// A verified user cannot request another verification.
	_, err = d.RequestVerification(userCtx, &model.RequestVerificationRequest{})
	require.Error(t, err)
	require.Equal(t, "This email has already been verified", err.Error())
}

func Test_authDomain_PasswordReset(t *testing.T) {
	ctx := testutil.MockContext()
	mockMailer := &testutil.MockMailer{}
	d := newAuthDomainForTest(mockMailer)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	_, err = d.RequestPasswordReset(ctx, &model.RequestPasswordResetRequest{
		Email: "unknown@example.com",
	})
	require.Error(t, err)
	require.Equal(t, "This email has not been registered", err.Error())

	_, err = d.RequestPasswordReset(ctx, &model.RequestPasswordResetRequest{Email: user.Email})
	require.NoError(t, err)
	require.Len(t, mockMailer.Sent, 1)

	// A second request within the cooldown is rejected.
	_, err = d.RequestPasswordReset(ctx, &model.RequestPasswordResetRequest{Email: user.Email})
	require.Error(t, err)
	require.Equal(t,
		"Please wait for a while before requesting a new reset email", err.Error())

	// After the cooldown a new request replaces the token.
	err = xcontext.DB(ctx).Model(&entity.PasswordReset{}).
		Where("user_id=?", user.ID).
		Update("created_at", time.Now().Add(-2*time.Minute)).Error
	require.NoError(t, err)

	_, err = d.RequestPasswordReset(ctx, &model.RequestPasswordResetRequest{Email: user.Email})
	require.NoError(t, err)
	require.Len(t, mockMailer.Sent, 2)

	reset, err := d.resetRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)

	// A fresh token opens the reset session.
	resp, err := d.VerifyPasswordReset(ctx, &model.VerifyPasswordResetRequest{
		UserID: user.ID,
		Token:  reset.Token,
	})
	require.NoError(t, err)
	require.Equal(t, user.ID, resp.UserID)

	_, err = d.VerifyPasswordReset(ctx, &model.VerifyPasswordResetRequest{
		UserID: user.ID,
		Token:  "wrong",
	})
	require.Error(t, err)
	require.Equal(t, "Invalid reset link", err.Error())

	// A token three calendar days old has expired.
	err = xcontext.DB(ctx).Model(&entity.PasswordReset{}).
		Where("user_id=?", user.ID).
		Update("created_at", time.Now().AddDate(0, 0, -3)).Error
	require.NoError(t, err)

	_, err = d.VerifyPasswordReset(ctx, &model.VerifyPasswordResetRequest{
		UserID: user.ID,
		Token:  reset.Token,
	})
	require.Error(t, err)
	require.Equal(t, "This reset link has expired", err.Error())
}

func Test_authDomain_ResetPassword(t *testing.T) {
	ctx := testutil.MockContext()
	d := newAuthDomainForTest(&testutil.MockMailer{})

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	err = d.resetRepo.Upsert(ctx, &entity.PasswordReset{
		UserID:    user.ID,
		Token:     "token",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	// Without the verified reset session the request is rejected.
	anonymous := httptest.NewRequest("POST", "/resetPassword", nil)
	_, err = d.ResetPassword(xcontext.WithHTTPRequest(ctx, anonymous), &model.ResetPasswordRequest{
		Password:        "newpass1",
		ConfirmPassword: "newpass1",
	})
	require.Error(t, err)
	require.Equal(t, "You need to verify the reset link before", err.Error())

	// Build a request carrying the reset session cookie.
	store := xcontext.SessionStore(ctx)
	seed := httptest.NewRequest("GET", "/verifyPasswordReset", nil)
	session, err := store.Get(seed)
	require.NoError(t, err)
	session.Values["reset_user_id"] = user.ID

	recorder := httptest.NewRecorder()
	require.NoError(t, store.Save(seed, recorder, session))

	verified := httptest.NewRequest("POST", "/resetPassword", nil)
	for _, cookie := range recorder.Result().Cookies() {
		verified.AddCookie(cookie)
	}

	verifiedCtx := xcontext.WithHTTPRequest(ctx, verified)
	_, err = d.ResetPassword(verifiedCtx, &model.ResetPasswordRequest{
		Password:        "newpass1",
		ConfirmPassword: "newpass1",
	})
	require.NoError(t, err)

	// The new password works and the token is consumed.
	gotUser, err := d.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, crypto.ComparePassword(gotUser.PasswordHash, "newpass1"))

	_, err = d.resetRepo.GetByUserID(ctx, user.ID)
	require.Error(t, err)
}

func Test_authDomain_ChangePassword(t *testing.T) {
	ctx := testutil.MockContext()
	d := newAuthDomainForTest(&testutil.MockMailer{})

	hashed, err := crypto.HashPassword("oldpass1")
	require.NoError(t, err)
	user, err := testutil.SampleUser(ctx, &entity.User{PasswordHash: hashed})
	require.NoError(t, err)
	userCtx := xcontext.WithRequestUserID(ctx, user.ID)

	_, err = d.ChangePassword(userCtx, &model.ChangePasswordRequest{
		OldPassword:     "wrong",
		Password:        "newpass1",
		ConfirmPassword: "newpass1",
	})
	require.Error(t, err)
	require.Equal(t, "The old password is incorrect", err.Error())

	_, err = d.ChangePassword(userCtx, &model.ChangePasswordRequest{
		OldPassword:     "oldpass1",
		Password:        "newpass1",
		ConfirmPassword: "newpass1",
	})
	require.NoError(t, err)

	gotUser, err := d.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, crypto.ComparePassword(gotUser.PasswordHash, "newpass1"))
}

func Test_dateInt_CalendarWindow(t *testing.T) {
	created := time.Date(2023, 8, 25, 23, 59, 0, 0, time.UTC)
	redeemed := time.Date(2023, 8, 28, 0, 1, 0, 0, time.UTC)

	// The window counts calendar days, not full 24-hour periods.
	require.Equal(t, 3, dateInt(redeemed)-dateInt(created))
	require.Equal(t, 2, dateInt(redeemed.AddDate(0, 0, -1))-dateInt(created))
}
