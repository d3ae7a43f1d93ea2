package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/draftdesk/draftdesk/internal/domain"
	"github.com/draftdesk/draftdesk/internal/generation"
)

const (
	emailMaxTokens  = 500
	reportMaxTokens = 1000
)

// ComposeService runs the generation flows: AI-written emails and reports,
// and grammar/style optimization passes over user content.
type ComposeService struct {
	llm     generation.Completer
	reports domain.ReportRepository
}

// NewComposeService creates a new ComposeService.
func NewComposeService(llm generation.Completer, reports domain.ReportRepository) *ComposeService {
	return &ComposeService{llm: llm, reports: reports}
}

// GenerateEmail produces an email draft from the given context, tone,
// audience, and purpose.
func (s *ComposeService) GenerateEmail(ctx context.Context, emailContext, tone, audience, purpose string) (string, error) {
	prompt := fmt.Sprintf(
		"Write a well structured and an %s email for %s with the purpose of %s. The context is: %s",
		tone, audience, purpose, emailContext,
	)
	return s.llm.Complete(ctx, []generation.Message{
		{Role: "system", Content: "Generate an email based on user input."},
		{Role: "user", Content: prompt},
	}, emailMaxTokens)
}

// GenerateReport produces a report draft. Lines the model prefixes with
// "Title:" or "Report:" are stripped from the result.
func (s *ComposeService) GenerateReport(ctx context.Context, topic, tone, length, industry, audience string) (string, error) {
	prompt := fmt.Sprintf(
		"Generate a %s-page %s report on %s, targeting %s in the %s industry.",
		length, tone, topic, audience, industry,
	)
	content, err := s.llm.Complete(ctx, []generation.Message{
		{Role: "system", Content: "Generate a report based on user input."},
		{Role: "user", Content: prompt},
	}, reportMaxTokens)
	if err != nil {
		return "", err
	}
	return cleanGeneratedContent(content), nil
}

// IdentifyFlaws asks the model to point out the parts of the content that
// need improvement.
func (s *ComposeService) IdentifyFlaws(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: no content provided", domain.ErrInvalidInput)
	}
	prompt := "You are an assistant that helps users improve their content with its clarity, grammar, style and overall. " +
		"You should only display the parts or phrases or words which need to be improved. " +
		"You should give the user instruction on how to improve those specific words or phrases. " +
		"The original content is: " + content
	return s.llm.Complete(ctx, []generation.Message{
		{Role: "system", Content: prompt},
	}, 0)
}

// Optimize rewrites the content for the given improvement type, audience,
// and tone.
func (s *ComposeService) Optimize(ctx context.Context, improvementType, audience, tone, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: no content provided", domain.ErrInvalidInput)
	}
	prompt := fmt.Sprintf(
		"You are an assistant that helps users improve their content for %s. "+
			"Generate optimized content suitable for a %s tone aimed at %s. "+
			"The original content is: %s",
		improvementType, tone, audience, content,
	)
	return s.llm.Complete(ctx, []generation.Message{
		{Role: "system", Content: prompt},
	}, 0)
}

// SaveReport persists a generated report to the user's account.
func (s *ComposeService) SaveReport(ctx context.Context, userID int64, content string) (*domain.Report, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: report content is required", domain.ErrInvalidInput)
	}
	report := &domain.Report{UserID: userID, Content: content}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	return report, nil
}

// ListReports returns the user's saved reports, newest first.
func (s *ComposeService) ListReports(ctx context.Context, userID int64) ([]domain.Report, error) {
	return s.reports.ListByUser(ctx, userID)
}

// GetReport retrieves a saved report, refusing to reveal other users'
// reports (they read as not found).
func (s *ComposeService) GetReport(ctx context.Context, userID, id int64) (*domain.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return report, nil
}

// cleanGeneratedContent removes boilerplate lines the model sometimes adds.
func cleanGeneratedContent(content string) string {
	unwanted := []string{"Title:", "Report:"}
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		drop := false
		for _, prefix := range unwanted {
			if strings.HasPrefix(line, prefix) {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
