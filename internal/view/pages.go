package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/draftdesk/draftdesk/internal/domain"
	"github.com/draftdesk/draftdesk/internal/session"
)

// LandingPage is the public dashboard shown to anonymous visitors.
func LandingPage(flashes []session.Flash) templ.Component {
	return layout("Welcome", flashes, static(
		`<h1>Write better, faster</h1>`+
			`<p>Generate polished emails and reports, or optimize your own writing.</p>`+
			`<p><a href="/login">Log in</a> or <a href="/register">create an account</a>.</p>`))
}

// RegisterPage renders the registration form.
func RegisterPage(flashes []session.Flash) templ.Component {
	return layout("Register", flashes, static(
		`<h1>Create your account</h1>`+
			`<form method="post" action="/register">`+
			`<label>First name <input type="text" name="first_name" required></label>`+
			`<label>Last name <input type="text" name="last_name" required></label>`+
			`<label>Email <input type="email" name="email" required></label>`+
			`<label>Password <input type="password" name="password" required></label>`+
			`<button type="submit">Register</button>`+
			`</form>`+
			`<p>Already registered? <a href="/login">Log in</a>.</p>`))
}

// ConfirmEmailPage renders the verification-code form.
func ConfirmEmailPage(flashes []session.Flash) templ.Component {
	return layout("Confirm your email", flashes, static(
		`<h1>Check your inbox</h1>`+
			`<p>Enter the 6-digit code we sent to your email address.</p>`+
			`<form method="post" action="/confirm_email">`+
			`<label>Confirmation code <input type="text" name="confirmation_code" inputmode="numeric" required></label>`+
			`<button type="submit">Confirm</button>`+
			`</form>`))
}

// LoginPage renders the login form.
func LoginPage(flashes []session.Flash) templ.Component {
	return layout("Log in", flashes, static(
		`<h1>Log in</h1>`+
			`<form method="post" action="/login">`+
			`<label>Email <input type="email" name="email" required></label>`+
			`<label>Password <input type="password" name="password" required></label>`+
			`<label class="remember"><input type="checkbox" name="remember" value="on"> Remember me</label>`+
			`<button type="submit">Log in</button>`+
			`</form>`+
			`<p><a href="/forgot_password">Forgot your password?</a></p>`))
}

// ForgotPasswordPage renders the reset-request form.
func ForgotPasswordPage(flashes []session.Flash) templ.Component {
	return layout("Forgot password", flashes, static(
		`<h1>Reset your password</h1>`+
			`<form method="post" action="/forgot_password">`+
			`<label>Email <input type="email" name="email" required></label>`+
			`<button type="submit">Send reset link</button>`+
			`</form>`))
}

// ResetPasswordPage renders the new-password form for a verified token.
func ResetPasswordPage(token string, flashes []session.Flash) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<h1>Choose a new password</h1>`+
				`<form method="post" action="/reset_password/%s">`+
				`<label>New password <input type="password" name="new_password" required></label>`+
				`<label>Confirm password <input type="password" name="confirm_password" required></label>`+
				`<button type="submit">Reset password</button>`+
				`</form>`,
			templ.EscapeString(token))
		return err
	})
	return layout("Reset password", flashes, body)
}

// HomePage is the authenticated landing page.
func HomePage(firstName, initials string, flashes []session.Flash) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<h1>Welcome back, %s</h1><span class="avatar">%s</span>`+
				`<ul class="tools">`+
				`<li><a href="/emails/generate-emails">Generate an email</a></li>`+
				`<li><a href="/generate-content">Generate a report</a></li>`+
				`<li><a href="/optimize-content">Optimize your writing</a></li>`+
				`<li><a href="/reports">Saved reports</a></li>`+
				`<li><a href="/edit-profile">Edit profile</a></li>`+
				`<li><a href="/logout">Log out</a></li>`+
				`</ul>`,
			templ.EscapeString(firstName), templ.EscapeString(initials))
		return err
	})
	return layout("Home", flashes, body)
}

// ProfilePage renders the profile edit form pre-filled with the user's
// current details.
func ProfilePage(user *domain.User, flashes []session.Flash) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<h1>Edit profile</h1>`+
				`<form method="post" action="/update_profile">`+
				`<label>First name <input type="text" name="first_name" value="%s" required></label>`+
				`<label>Last name <input type="text" name="last_name" value="%s" required></label>`+
				`<label>Email <input type="email" name="email" value="%s" required></label>`+
				`<button type="submit">Save changes</button>`+
				`</form>`,
			templ.EscapeString(user.FirstName),
			templ.EscapeString(user.LastName),
			templ.EscapeString(user.Email))
		return err
	})
	return layout("Edit profile", flashes, body)
}

// EmailGeneratorPage renders the email generation tool.
func EmailGeneratorPage(flashes []session.Flash) templ.Component {
	return layout("Generate an email", flashes, static(
		`<h1>Generate an email</h1>`+
			`<form id="email-form">`+
			`<label>Context <textarea name="context" required></textarea></label>`+
			`<label>Tone <input type="text" name="tone" required></label>`+
			`<label>Audience <input type="text" name="audience" required></label>`+
			`<label>Purpose <input type="text" name="purpose" required></label>`+
			`<button type="submit">Generate</button>`+
			`</form>`+
			`<pre id="email-result"></pre>`+
			`<script src="/static/email.js"></script>`))
}

// ContentGeneratorPage renders the report generation tool.
func ContentGeneratorPage(flashes []session.Flash) templ.Component {
	return layout("Generate a report", flashes, static(
		`<h1>Generate a report</h1>`+
			`<form id="report-form">`+
			`<label>Instructions <textarea name="instructions" required></textarea></label>`+
			`<label>Tone <input type="text" name="tone" required></label>`+
			`<label>Length (pages) <input type="text" name="length" required></label>`+
			`<label>Industry <input type="text" name="industry" required></label>`+
			`<label>Audience <input type="text" name="audience" required></label>`+
			`<button type="submit">Generate</button>`+
			`</form>`+
			`<pre id="report-result"></pre>`+
			`<script src="/static/report.js"></script>`))
}

// OptimizePage renders the content optimization tool.
func OptimizePage(flashes []session.Flash) templ.Component {
	return layout("Optimize content", flashes, static(
		`<h1>Optimize your writing</h1>`+
			`<form id="optimize-form" enctype="multipart/form-data">`+
			`<label>Content <textarea name="contentInput"></textarea></label>`+
			`<label>Or upload a file <input type="file" name="fileUpload" accept=".txt"></label>`+
			`<label>Improvement type <input type="text" name="improvementType"></label>`+
			`<label>Target audience <input type="text" name="targetAudience"></label>`+
			`<label>Tone <input type="text" name="tone"></label>`+
			`<button type="submit">Optimize</button>`+
			`</form>`+
			`<pre id="optimize-result"></pre>`+
			`<script src="/static/optimize.js"></script>`))
}

// ReportsPage lists the user's saved reports.
func ReportsPage(reports []domain.Report, flashes []session.Flash) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Saved reports</h1>`); err != nil {
			return err
		}
		if len(reports) == 0 {
			_, err := io.WriteString(w, `<p>No saved reports yet.</p>`)
			return err
		}
		if _, err := io.WriteString(w, `<ul class="reports">`); err != nil {
			return err
		}
		for _, r := range reports {
			preview := r.Content
			if runes := []rune(preview); len(runes) > 120 {
				preview = string(runes[:120]) + "…"
			}
			if _, err := fmt.Fprintf(w, `<li><time>%s</time> %s</li>`,
				templ.EscapeString(r.CreatedAt.Format("2006-01-02 15:04")),
				templ.EscapeString(preview)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
	return layout("Saved reports", flashes, body)
}
