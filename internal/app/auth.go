package app

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

const passwordResetTTL = 45 * time.Minute

func (app *Application) Signup(w http.ResponseWriter, r *http.Request) {
	var input api.SignupRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	app.signup(w, r, input, domain.RoleUser)
}

func (app *Application) AdminSignup(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.AdminSignupRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	secret := app.config.AdminSignupSecret
	if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(input.AdminSecret)) != 1 {
		logger.Warn("admin signup rejected", "email", input.Email)
		app.forbiddenResponse(w, r, "Invalid admin secret")
		return
	}

	app.signup(w, r, input.SignupRequest, domain.RoleAdmin)
}

func (app *Application) signup(w http.ResponseWriter, r *http.Request, input api.SignupRequest, role domain.Role) {
	logger := app.contextGetLogger(r)

	err := app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	user := domain.User{
		Username: email,
		Name:     input.Name,
		Email:    email,
		Role:     role,
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	err = user.Password.Set(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.userRepo.Create(r.Context(), &user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			logger.Warn("signup attempt for existing email")
			app.conflictResponse(w, r, "An account with this email already exists")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	logger.Info("user signed up", "user_id", user.ID, "role", user.Role)

	err = app.writeJSON(w, http.StatusCreated, toUserResponse(&user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) Login(w http.ResponseWriter, r *http.Request) {
	app.login(w, r, false)
}

func (app *Application) AdminLogin(w http.ResponseWriter, r *http.Request) {
	app.login(w, r, true)
}

func (app *Application) login(w http.ResponseWriter, r *http.Request, admin bool) {
	logger := app.contextGetLogger(r)

	var input api.LoginRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		logger.Warn("login validation failed")
		app.invalidCredentialsResponse(w, r)
		return
	}

	user, err := app.userRepo.GetByEmail(r.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("login attempt for non-existent user")
			app.invalidCredentialsResponse(w, r)
		default:
			logger.Error("failed to get user by email during login", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	match, err := user.Password.Matches(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !match {
		logger.Warn("login failed due to incorrect password")
		app.invalidCredentialsResponse(w, r)
		return
	}

	if user.IsBlocked {
		logger.Warn("login attempt by blocked user", "user_id", user.ID)
		app.forbiddenResponse(w, r, "Your account has been blocked")
		return
	}

	if admin && user.Role != domain.RoleAdmin {
		logger.Warn("admin login attempt by non-admin user", "user_id", user.ID)
		app.forbiddenResponse(w, r, ErrAdminRequired)
		return
	}

	// Renew the token on every privilege change to prevent session fixation.
	err = app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), SessionKeyUserId.String(), user.ID)
	app.sessionManager.Put(r.Context(), SessionKeyRole.String(), string(user.Role))

	err = app.writeJSON(w, http.StatusOK, toUserResponse(user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) Logout(w http.ResponseWriter, r *http.Request) {
	userId := app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String())
	if userId == 0 {
		app.unauthorizedAccessResponse(w, r)
		return
	}

	err := app.sessionManager.Destroy(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	user, err := app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toUserResponse(user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ForgotPassword answers 202 whether or not the email is registered.
func (app *Application) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.ForgotPasswordRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	resp := api.MessageResponse{
		Message: "If the email is registered, a password reset link has been sent",
	}

	user, err := app.userRepo.GetByEmail(r.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			app.serverErrorResponse(w, r, err)
			return
		}

		logger.Warn("password reset requested for unknown email")
	} else {
		token, err := domain.GenerateToken(user.ID, passwordResetTTL, domain.PasswordResetScope)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		err = app.tokenRepo.Create(r.Context(), token)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		app.background(func() {
			data := map[string]any{
				"passwordResetToken": token.Plaintext,
			}

			err := app.mailer.Send(user.Email, "password_reset.tmpl", data)
			if err != nil {
				logger.Error("failed to send password reset email", "error", err)
				return
			}

			logger.Info("password reset email sent", "user_id", user.ID)
		})
	}

	err = app.writeJSON(w, http.StatusAccepted, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.ResetPasswordRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	user, err := app.userRepo.GetByToken(r.Context(), domain.HashToken(input.Token), domain.PasswordResetScope)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = user.Password.Set(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.userRepo.UpdatePassword(r.Context(), user)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.tokenRepo.DeleteAllForUser(r.Context(), domain.PasswordResetScope, user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("password reset", "user_id", user.ID)

	resp := api.MessageResponse{Message: "Your password was successfully reset"}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toUserResponse(user *domain.User) api.UserResponse {
	return api.UserResponse{
		Id:           user.ID,
		Username:     user.Username,
		Name:         user.Name,
		Email:        user.Email,
		Role:         string(user.Role),
		Phone:        user.Phone,
		IsBlocked:    user.IsBlocked,
		CreatedAt:    user.CreatedAt,
		LastActive:   user.LastActive,
		BookingCount: user.BookingCount,
	}
}
