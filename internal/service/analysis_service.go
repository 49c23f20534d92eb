package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const analysisPrompt = `You are a construction budget controller. Analyze the
following renovation project data and answer in markdown with exactly these
four sections:

## Summary
Two or three sentences on the overall budget situation.

## Risk Assessment
The biggest budget risks, as bullet points starting with "- ".

## Cash Flow Assessment
One short paragraph on upcoming payment obligations and the burn rate.

## Recommendations
Concrete next steps, as bullet points starting with "- ".

Keep it factual and grounded in the numbers. Do not invent figures.

Project data:

%s`

// headingRe matches any "## Heading" line. Section bodies run from one
// heading to the next, so unknown headings still terminate the previous body.
var headingRe = regexp.MustCompile(`(?m)^##[ \t]+(.+?)[ \t]*$`)

// AnalysisService asks a language model to read the plain-text report and
// grade the project. The whole feature is optional: without an API key the
// service reports itself unavailable and everything else keeps working.
type AnalysisService struct {
	client *openai.Client
	model  string
}

// NewAnalysisService creates a new AnalysisService. An empty API key yields
// a disabled service.
func NewAnalysisService(apiKey, model string) *AnalysisService {
	if apiKey == "" {
		return &AnalysisService{}
	}
	if model == "" {
		model = openai.GPT4o
	}
	return &AnalysisService{client: openai.NewClient(apiKey), model: model}
}

// Available reports whether analysis requests can be served
func (s *AnalysisService) Available() bool {
	return s != nil && s.client != nil
}

// Analyze sends the report text to the model and parses the sectioned
// markdown answer.
func (s *AnalysisService) Analyze(ctx context.Context, reportText string) (*domain.Analysis, error) {
	if !s.Available() {
		return nil, domain.ErrAnalysisUnavailable
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(analysisPrompt, reportText),
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, domain.ErrAnalysisEmpty
	}

	analysis := ParseAnalysis(resp.Choices[0].Message.Content)

	log.Info().
		Str("model", s.model).
		Int("recommendations", len(analysis.Recommendations)).
		Msg("Budget analysis completed")

	return analysis, nil
}

// ParseAnalysis splits the markdown answer into the four fixed sections.
// Unknown sections are ignored; missing ones stay empty. Recommendation
// and risk bullets keep their text without the leading dash.
func ParseAnalysis(markdown string) *domain.Analysis {
	analysis := &domain.Analysis{}

	headings := headingRe.FindAllStringSubmatchIndex(markdown, -1)
	for i, match := range headings {
		heading := markdown[match[2]:match[3]]
		end := len(markdown)
		if i+1 < len(headings) {
			end = headings[i+1][0]
		}
		body := strings.TrimSpace(markdown[match[1]:end])
		switch heading {
		case "Summary":
			analysis.Summary = body
		case "Risk Assessment":
			analysis.RiskAssessment = body
		case "Cash Flow Assessment":
			analysis.CashFlowAssessment = body
		case "Recommendations":
			analysis.Recommendations = parseBullets(body)
		}
	}

	return analysis
}

// parseBullets extracts "- " list items; a body without any list markers
// becomes a single recommendation.
func parseBullets(body string) []string {
	var items []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "- "); ok {
			items = append(items, strings.TrimSpace(rest))
		} else if rest, ok := strings.CutPrefix(line, "* "); ok {
			items = append(items, strings.TrimSpace(rest))
		}
	}
	if len(items) == 0 && body != "" {
		items = []string{body}
	}
	return items
}
