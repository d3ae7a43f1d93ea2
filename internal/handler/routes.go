package handler

import (
	"net/http"

	"github.com/draftdesk/draftdesk/internal/email"
	"github.com/draftdesk/draftdesk/internal/service"
	"github.com/draftdesk/draftdesk/internal/session"
	"github.com/draftdesk/draftdesk/web"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	compose *service.ComposeService,
	sessions *session.Manager,
	sender email.Sender,
	limiter *service.TokenBucket,
	baseURL string,
) {
	authHandler := NewAuthHandler(auth, sessions, sender, limiter, baseURL)
	composeHandler := NewComposeHandler(compose, sessions)

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /{$}", authHandler.HandleLanding)
	mux.Handle("GET /static/", http.FileServerFS(web.Static))

	// Identity flows.
	mux.HandleFunc("GET /register", authHandler.HandleRegisterPage)
	mux.HandleFunc("POST /register", authHandler.HandleRegister)
	mux.HandleFunc("GET /confirm_email", authHandler.HandleConfirmEmailPage)
	mux.HandleFunc("POST /confirm_email", authHandler.HandleConfirmEmail)
	mux.HandleFunc("GET /login", authHandler.HandleLoginPage)
	mux.HandleFunc("POST /login", authHandler.HandleLogin)
	mux.HandleFunc("GET /logout", authHandler.HandleLogout)
	mux.HandleFunc("GET /forgot_password", authHandler.HandleForgotPasswordPage)
	mux.HandleFunc("POST /forgot_password", authHandler.HandleForgotPassword)
	mux.HandleFunc("GET /reset_password/{token}", authHandler.HandleResetPasswordPage)
	mux.HandleFunc("POST /reset_password/{token}", authHandler.HandleResetPassword)
	mux.HandleFunc("GET /home", authHandler.HandleHome)
	mux.HandleFunc("GET /edit-profile", authHandler.HandleEditProfile)
	mux.HandleFunc("POST /update_profile", authHandler.HandleUpdateProfile)

	// Generation tools, pages and JSON endpoints, all behind auth.
	page := func(fn http.HandlerFunc) http.Handler { return RequireAuth(sessions, fn) }
	api := func(fn http.HandlerFunc) http.Handler { return RequireAuthJSON(sessions, fn) }

	mux.Handle("GET /emails/generate-emails", page(composeHandler.HandleEmailGeneratorPage))
	mux.Handle("POST /emails/generate_email", api(composeHandler.HandleGenerateEmail))
	mux.Handle("GET /generate-content", page(composeHandler.HandleContentGeneratorPage))
	mux.Handle("POST /generate_report", api(composeHandler.HandleGenerateReport))
	mux.Handle("POST /download_report", api(composeHandler.HandleDownloadReport))
	mux.Handle("GET /optimize-content", page(composeHandler.HandleOptimizePage))
	mux.Handle("POST /identify_flaws", api(composeHandler.HandleIdentifyFlaws))
	mux.Handle("POST /optimize_content", api(composeHandler.HandleOptimizeContent))
	mux.Handle("GET /reports", page(composeHandler.HandleReportsPage))
	mux.Handle("POST /reports", api(composeHandler.HandleSaveReport))
}
