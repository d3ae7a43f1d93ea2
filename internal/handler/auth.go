package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/draftdesk/draftdesk/internal/domain"
	"github.com/draftdesk/draftdesk/internal/email"
	"github.com/draftdesk/draftdesk/internal/service"
	"github.com/draftdesk/draftdesk/internal/session"
	"github.com/draftdesk/draftdesk/internal/view"
)

// sendTimeout bounds outbound email delivery so a slow mail provider cannot
// stall a request indefinitely.
const sendTimeout = 10 * time.Second

const genericErrorMessage = "An unexpected error occurred. Please try again."

// AuthHandler handles the registration, confirmation, login, password-reset,
// and profile flows.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	sender   email.Sender
	limiter  *service.TokenBucket
	baseURL  string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions *session.Manager, sender email.Sender, limiter *service.TokenBucket, baseURL string) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, sender: sender, limiter: limiter, baseURL: baseURL}
}

// HandleLanding renders the public landing page.
// GET /
func (h *AuthHandler) HandleLanding(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	flashes := sess.PopFlashes()
	h.sessions.Save(w, sess)
	view.LandingPage(flashes).Render(r.Context(), w)
}

// HandleRegisterPage renders the registration form.
// GET /register
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	flashes := sess.PopFlashes()
	h.sessions.Save(w, sess)
	view.RegisterPage(flashes).Render(r.Context(), w)
}

// HandleRegister processes the registration form. On success the pending
// registration and verification code are stashed in the session and a code
// email is sent; the flow always advances to the confirmation screen, with a
// distinct flash when delivery fails. Re-registering before confirmation
// overwrites the single pending slot.
// POST /register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	pending, code, err := h.auth.StartRegistration(r.Context(),
		r.FormValue("first_name"), r.FormValue("last_name"),
		r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		var verrs domain.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			for _, fe := range verrs {
				sess.AddFlash(fe.Message, fe.Field)
			}
		case errors.Is(err, domain.ErrDuplicateEmail):
			sess.AddFlash("Email already registered. Please log in or use a different email.", "emailRegister")
		default:
			slog.Error("start registration", "error", err)
			sess.AddFlash(genericErrorMessage, "error")
		}
		h.sessions.Save(w, sess)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	sess.Pending = pending
	sess.Code = code

	if err := h.sendVerificationCode(r.Context(), pending.Email, code); err != nil {
		slog.Error("send verification email", "error", err, "to", pending.Email)
		sess.AddFlash("Error sending verification email. Please try again later.", "verification")
	} else {
		sess.AddFlash("A verification code has been sent to your email.", "verification")
	}

	h.sessions.Save(w, sess)
	http.Redirect(w, r, "/confirm_email", http.StatusSeeOther)
}

// HandleConfirmEmailPage renders the code-entry form.
// GET /confirm_email
func (h *AuthHandler) HandleConfirmEmailPage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	flashes := sess.PopFlashes()
	h.sessions.Save(w, sess)
	view.ConfirmEmailPage(flashes).Render(r.Context(), w)
}

// HandleConfirmEmail compares the submitted code to the session's code as
// exact strings. On match the pending registration becomes a verified user,
// the pending state is consumed, and the session is logged in. On mismatch
// the pending state is untouched.
// POST /confirm_email
func (h *AuthHandler) HandleConfirmEmail(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	if !h.limiter.Allow(clientIP(r)) {
		sess.AddFlash("Too many attempts. Please wait a moment and try again.", "verification")
		h.sessions.Save(w, sess)
		http.Redirect(w, r, "/confirm_email", http.StatusSeeOther)
		return
	}

	user, err := h.auth.ConfirmRegistration(r.Context(), sess.Pending, sess.Code, r.FormValue("confirmation_code"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCodeMismatch):
			sess.AddFlash("Incorrect confirmation code. Please try again.", "verification")
		case errors.Is(err, domain.ErrDuplicateEmail):
			sess.ClearPending()
			sess.AddFlash("Email already registered. Please log in.", "verification")
		default:
			slog.Error("confirm registration", "error", err)
			sess.AddFlash(genericErrorMessage, "verification")
		}
		h.sessions.Save(w, sess)
		http.Redirect(w, r, "/confirm_email", http.StatusSeeOther)
		return
	}

	sess.ClearPending()
	sess.SetUser(user)
	sess.AddFlash("Your email has been verified. You are now logged in.", "verification")
	h.sessions.Save(w, sess)
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// HandleLoginPage renders the login form.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	flashes := sess.PopFlashes()
	h.sessions.Save(w, sess)
	view.LoginPage(flashes).Render(r.Context(), w)
}

// HandleLogin verifies credentials. The failure message distinguishes
// unknown user, unverified email, and wrong password, in that check order.
// "Remember me" extends the session beyond the browser-session default.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	if !h.limiter.Allow(clientIP(r)) {
		sess.AddFlash("Too many attempts. Please wait a moment and try again.", "loginError")
		h.sessions.Save(w, sess)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.auth.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			sess.AddFlash("User does not exist. Please register.", "loginError")
		case errors.Is(err, domain.ErrNotVerified):
			sess.AddFlash("Email not verified. Please check your email.", "loginError")
		case errors.Is(err, domain.ErrUnauthorized):
			sess.AddFlash("Incorrect password. Please try again.", "loginError")
		default:
			slog.Error("login", "error", err)
			sess.AddFlash(genericErrorMessage, "loginError")
		}
		h.sessions.Save(w, sess)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	sess.SetUser(user)
	sess.Remember = r.FormValue("remember") != ""
	h.sessions.Save(w, sess)
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// HandleLogout clears all session state unconditionally.
// GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	h.sessions.Destroy(w, sess)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleHome renders the authenticated landing page.
// GET /home
func (h *AuthHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if !sess.LoggedIn() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	flashes := sess.PopFlashes()
	h.sessions.Save(w, sess)
	view.HomePage(sess.FirstName, sess.Initials, flashes).Render(r.Context(), w)
}

// HandleEditProfile renders the profile form.
// GET /edit-profile
func (h *AuthHandler) HandleEditProfile(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if !sess.LoggedIn() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("load user for profile", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	flashes := sess.PopFlashes()
	h.sessions.Save(w, sess)
	view.ProfilePage(user, flashes).Render(r.Context(), w)
}

// HandleUpdateProfile persists new profile details, enforcing email
// uniqueness excluding the user's own record, and refreshes the session
// identity fields.
// POST /update_profile
func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if !sess.LoggedIn() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.auth.UpdateProfile(r.Context(), sess.UserID,
		r.FormValue("first_name"), r.FormValue("last_name"), r.FormValue("email"))
	if err != nil {
		var verrs domain.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			for _, fe := range verrs {
				sess.AddFlash(fe.Message, fe.Field)
			}
		case errors.Is(err, domain.ErrDuplicateEmail):
			sess.AddFlash("Email already taken by another user.", "emailUpdateError")
		default:
			slog.Error("update profile", "error", err)
			sess.AddFlash(genericErrorMessage, "error")
		}
		h.sessions.Save(w, sess)
		http.Redirect(w, r, "/edit-profile", http.StatusSeeOther)
		return
	}

	sess.SetUser(user)
	sess.AddFlash("Profile updated successfully.", "profileUpdateSuccess")
	h.sessions.Save(w, sess)
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// HandleForgotPasswordPage renders the reset-request form.
// GET /forgot_password
func (h *AuthHandler) HandleForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	flashes := sess.PopFlashes()
	h.sessions.Save(w, sess)
	view.ForgotPasswordPage(flashes).Render(r.Context(), w)
}

// HandleForgotPassword issues a reset token for a known email and delivers
// the reset link. Unknown emails get an explicit "not found" flash; this
// deliberately reveals whether an address is registered.
// POST /forgot_password
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	if !h.limiter.Allow(clientIP(r)) {
		sess.AddFlash("Too many attempts. Please wait a moment and try again.", "forgotPasswordError")
		h.sessions.Save(w, sess)
		http.Redirect(w, r, "/forgot_password", http.StatusSeeOther)
		return
	}

	emailAddr := r.FormValue("email")
	token, err := h.auth.IssueResetToken(r.Context(), emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			sess.AddFlash("Email not found. Please register.", "forgotPasswordError")
			h.sessions.Save(w, sess)
			http.Redirect(w, r, "/forgot_password", http.StatusSeeOther)
			return
		}
		slog.Error("issue reset token", "error", err)
		sess.AddFlash(genericErrorMessage, "forgotPasswordError")
		h.sessions.Save(w, sess)
		http.Redirect(w, r, "/forgot_password", http.StatusSeeOther)
		return
	}

	resetURL := h.baseURL + "/reset_password/" + token
	if err := h.sendResetLink(r.Context(), emailAddr, resetURL); err != nil {
		slog.Error("send reset email", "error", err, "to", emailAddr)
		sess.AddFlash("Error sending the reset email. Please try again later.", "forgotPasswordError")
	} else {
		sess.AddFlash("A password reset link has been sent to your email.", "forgotPasswordSuccess")
	}

	h.sessions.Save(w, sess)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleResetPasswordPage verifies the token before showing the form.
// Expired and invalid tokens get the same user-facing message.
// GET /reset_password/{token}
func (h *AuthHandler) HandleResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	token := r.PathValue("token")

	if _, err := h.auth.VerifyResetToken(token); err != nil {
		sess.AddFlash("The password reset link has expired.", "resetPasswordError")
		h.sessions.Save(w, sess)
		http.Redirect(w, r, "/forgot_password", http.StatusSeeOther)
		return
	}

	flashes := sess.PopFlashes()
	h.sessions.Save(w, sess)
	view.ResetPasswordPage(token, flashes).Render(r.Context(), w)
}

// HandleResetPassword verifies the token again on submit, requires matching
// passwords, and persists the new hash. The user is not auto-logged-in.
// POST /reset_password/{token}
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	token := r.PathValue("token")

	err := h.auth.ResetPassword(r.Context(), token,
		r.FormValue("new_password"), r.FormValue("confirm_password"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired), errors.Is(err, domain.ErrTokenInvalid):
			sess.AddFlash("The password reset link has expired.", "resetPasswordError")
			h.sessions.Save(w, sess)
			http.Redirect(w, r, "/forgot_password", http.StatusSeeOther)
		case errors.Is(err, domain.ErrInvalidInput):
			sess.AddFlash("Passwords do not match.", "resetPasswordError")
			h.sessions.Save(w, sess)
			http.Redirect(w, r, "/reset_password/"+token, http.StatusSeeOther)
		default:
			slog.Error("reset password", "error", err)
			sess.AddFlash(genericErrorMessage, "resetPasswordError")
			h.sessions.Save(w, sess)
			http.Redirect(w, r, "/reset_password/"+token, http.StatusSeeOther)
		}
		return
	}

	sess.AddFlash("Your password has been reset. You can now log in.", "resetPasswordSuccess")
	h.sessions.Save(w, sess)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) sendVerificationCode(ctx context.Context, to, code string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	body := fmt.Sprintf("<p>Your verification code is: <strong>%s</strong></p>", code)
	return h.sender.Send(ctx, to, "Email Verification Code", body)
}

func (h *AuthHandler) sendResetLink(ctx context.Context, to, resetURL string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	body := fmt.Sprintf(`<p>To reset your password, click the following link: <a href="%s">%s</a></p>`, resetURL, resetURL)
	return h.sender.Send(ctx, to, "Password Reset Request", body)
}
