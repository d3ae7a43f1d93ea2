package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
	"github.com/draftdesk/draftdesk/internal/domain"
	"github.com/draftdesk/draftdesk/internal/service"
	"github.com/draftdesk/draftdesk/internal/session"
	"github.com/draftdesk/draftdesk/internal/view"
)

// maxUploadBytes bounds the optimization file upload.
const maxUploadBytes = 10 << 20 // 10MB

// ComposeHandler handles the generation tools: email drafts, reports, and
// content optimization.
type ComposeHandler struct {
	compose  *service.ComposeService
	sessions *session.Manager
}

// NewComposeHandler creates a new ComposeHandler.
func NewComposeHandler(compose *service.ComposeService, sessions *session.Manager) *ComposeHandler {
	return &ComposeHandler{compose: compose, sessions: sessions}
}

// HandleEmailGeneratorPage renders the email generation tool.
// GET /emails/generate-emails
func (h *ComposeHandler) HandleEmailGeneratorPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, view.EmailGeneratorPage)
}

// HandleContentGeneratorPage renders the report generation tool.
// GET /generate-content
func (h *ComposeHandler) HandleContentGeneratorPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, view.ContentGeneratorPage)
}

// HandleOptimizePage renders the optimization tool.
// GET /optimize-content
func (h *ComposeHandler) HandleOptimizePage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, view.OptimizePage)
}

// HandleGenerateEmail proxies an email-draft prompt to the generation API.
// POST /emails/generate_email
// Request:  {"context":"...","tone":"...","audience":"...","purpose":"..."}
// Response: {"generated_email":"..."}
func (h *ComposeHandler) HandleGenerateEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Context  string `json:"context"`
		Tone     string `json:"tone"`
		Audience string `json:"audience"`
		Purpose  string `json:"purpose"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	generated, err := h.compose.GenerateEmail(r.Context(), req.Context, req.Tone, req.Audience, req.Purpose)
	if err != nil {
		slog.Error("generate email", "error", err)
		writeError(w, http.StatusBadGateway, "The generation service is unavailable. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"generated_email": generated})
}

// HandleGenerateReport proxies a report prompt to the generation API.
// POST /generate_report
// Request:  {"instructions":"...","tone":"...","length":"...","industry":"...","audience":"..."}
// Response: {"generated_report":"..."}
func (h *ComposeHandler) HandleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Instructions string `json:"instructions"`
		Tone         string `json:"tone"`
		Length       string `json:"length"`
		Industry     string `json:"industry"`
		Audience     string `json:"audience"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	generated, err := h.compose.GenerateReport(r.Context(), req.Instructions, req.Tone, req.Length, req.Industry, req.Audience)
	if err != nil {
		slog.Error("generate report", "error", err)
		writeError(w, http.StatusBadGateway, "The generation service is unavailable. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"generated_report": generated})
}

// HandleSaveReport saves a generated report to the user's account.
// POST /reports
// Request:  {"content":"..."}
// Response: {"id": 1}
func (h *ComposeHandler) HandleSaveReport(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	var req struct {
		Content string `json:"content"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	report, err := h.compose.SaveReport(r.Context(), sess.UserID, req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, "Report content is required.")
			return
		}
		slog.Error("save report", "error", err)
		writeError(w, http.StatusInternalServerError, genericErrorMessage)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": report.ID})
}

// HandleReportsPage lists the user's saved reports.
// GET /reports
func (h *ComposeHandler) HandleReportsPage(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	reports, err := h.compose.ListReports(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("list reports", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	flashes := sess.PopFlashes()
	h.sessions.Save(w, sess)
	view.ReportsPage(reports, flashes).Render(r.Context(), w)
}

// HandleDownloadReport serves submitted report content as a text attachment.
// POST /download_report
func (h *ComposeHandler) HandleDownloadReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusUnprocessableEntity, "Report content is required.")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="generated_report.txt"`)
	io.WriteString(w, req.Content)
}

// HandleIdentifyFlaws runs the flaw-identification pass over pasted content
// or an uploaded .txt file. The form field wins when both are present.
// POST /identify_flaws
// Response: {"flaws":"..."}
func (h *ComposeHandler) HandleIdentifyFlaws(w http.ResponseWriter, r *http.Request) {
	content, ok := h.readContent(w, r)
	if !ok {
		return
	}

	flaws, err := h.compose.IdentifyFlaws(r.Context(), content)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "No content provided.")
			return
		}
		slog.Error("identify flaws", "error", err)
		writeError(w, http.StatusBadGateway, "The generation service is unavailable. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"flaws": flaws})
}

// HandleOptimizeContent runs the optimization pass.
// POST /optimize_content
// Response: {"flaws":"","optimizedContent":"..."}
func (h *ComposeHandler) HandleOptimizeContent(w http.ResponseWriter, r *http.Request) {
	content, ok := h.readContent(w, r)
	if !ok {
		return
	}

	optimized, err := h.compose.Optimize(r.Context(),
		r.FormValue("improvementType"), r.FormValue("targetAudience"), r.FormValue("tone"), content)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "No content provided.")
			return
		}
		slog.Error("optimize content", "error", err)
		writeError(w, http.StatusBadGateway, "The generation service is unavailable. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"flaws":            "",
		"optimizedContent": optimized,
	})
}

// readContent extracts optimization input from the contentInput form field
// or, failing that, an uploaded .txt file. It writes the error response
// itself and returns ok=false when neither source yields content.
func (h *ComposeHandler) readContent(w http.ResponseWriter, r *http.Request) (string, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		// Fall back to an ordinary form post without a file part.
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body.")
			return "", false
		}
	}

	content := r.FormValue("contentInput")
	if strings.TrimSpace(content) != "" {
		return content, true
	}

	file, header, err := r.FormFile("fileUpload")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No content provided.")
		return "", false
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".txt") {
		writeError(w, http.StatusBadRequest, "Only .txt uploads are supported.")
		return "", false
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read the uploaded file.")
		return "", false
	}
	if strings.TrimSpace(string(data)) == "" {
		writeError(w, http.StatusBadRequest, "No content provided.")
		return "", false
	}
	return string(data), true
}

func (h *ComposeHandler) renderPage(w http.ResponseWriter, r *http.Request, page func([]session.Flash) templ.Component) {
	sess := SessionFromContext(r.Context())
	flashes := sess.PopFlashes()
	h.sessions.Save(w, sess)
	page(flashes).Render(r.Context(), w)
}
