package service

import (
	"context"
	"strings"
	"testing"

	"github.com/baufin/baufin-backend/internal/domain"
)

const sampleAnalysis = `## Summary
The project has spent 50% of its budget after two months. Spending is
roughly on track.

## Risk Assessment
- Plumbing is projected to exceed its planned budget by 10%.
- One installment of 5000.00 EUR is overdue.

## Cash Flow Assessment
At the current burn rate of 25000.00 EUR per month, open obligations of
10000.00 EUR are comfortably covered for the next quarter.

## Recommendations
- Settle the overdue installment to avoid late fees.
- Re-negotiate the plumbing change orders.
- Review the contingency reserve.`

func TestParseAnalysis_AllSections(t *testing.T) {
	analysis := ParseAnalysis(sampleAnalysis)

	if !strings.Contains(analysis.Summary, "50% of its budget") {
		t.Errorf("Unexpected summary: %q", analysis.Summary)
	}
	if !strings.Contains(analysis.RiskAssessment, "overdue") {
		t.Errorf("Unexpected risk assessment: %q", analysis.RiskAssessment)
	}
	if !strings.Contains(analysis.CashFlowAssessment, "burn rate") {
		t.Errorf("Unexpected cash flow assessment: %q", analysis.CashFlowAssessment)
	}
	if len(analysis.Recommendations) != 3 {
		t.Fatalf("Expected 3 recommendations, got %d: %v", len(analysis.Recommendations), analysis.Recommendations)
	}
	if analysis.Recommendations[0] != "Settle the overdue installment to avoid late fees." {
		t.Errorf("Unexpected first recommendation: %q", analysis.Recommendations[0])
	}
}

func TestParseAnalysis_MissingSections(t *testing.T) {
	analysis := ParseAnalysis("## Summary\nAll fine.\n\n## Unknown Section\nIgnored.")

	if analysis.Summary != "All fine." {
		t.Errorf("Unexpected summary: %q", analysis.Summary)
	}
	if analysis.RiskAssessment != "" || analysis.CashFlowAssessment != "" {
		t.Error("Expected missing sections to stay empty")
	}
	if analysis.Recommendations != nil {
		t.Errorf("Expected no recommendations, got %v", analysis.Recommendations)
	}
}

func TestParseAnalysis_UnknownHeadingEndsBody(t *testing.T) {
	analysis := ParseAnalysis("## Summary\nOn track.\n\n## Notes\nInternal remark.\n\n## Recommendations\n- Carry on.")

	if analysis.Summary != "On track." {
		t.Errorf("Expected body to stop at the next heading, got %q", analysis.Summary)
	}
	if len(analysis.Recommendations) != 1 || analysis.Recommendations[0] != "Carry on." {
		t.Errorf("Unexpected recommendations: %v", analysis.Recommendations)
	}
}

func TestParseAnalysis_ProseRecommendation(t *testing.T) {
	analysis := ParseAnalysis("## Recommendations\nKeep going as planned.")

	if len(analysis.Recommendations) != 1 || analysis.Recommendations[0] != "Keep going as planned." {
		t.Errorf("Expected prose to become one recommendation, got %v", analysis.Recommendations)
	}
}

func TestParseAnalysis_StarBullets(t *testing.T) {
	analysis := ParseAnalysis("## Recommendations\n* First\n* Second")

	if len(analysis.Recommendations) != 2 {
		t.Errorf("Expected 2 recommendations, got %v", analysis.Recommendations)
	}
}

func TestAnalysisService_Unavailable(t *testing.T) {
	analysisService := NewAnalysisService("", "")

	if analysisService.Available() {
		t.Error("Expected service without API key to be unavailable")
	}
	if _, err := analysisService.Analyze(context.Background(), "data"); err != domain.ErrAnalysisUnavailable {
		t.Errorf("Expected ErrAnalysisUnavailable, got %v", err)
	}
}
