package interview

import (
	"strings"
	"testing"

	"careerpilot/internal/types"
)

func TestNeutralAnalysis(t *testing.T) {
	a := neutralAnalysis()

	if a.TechnicalAccuracy != 7 || a.ProblemSolving != 7 || a.CommunicationClarity != 7 {
		t.Errorf("neutral scores = %d/%d/%d, want 7/7/7",
			a.TechnicalAccuracy, a.ProblemSolving, a.CommunicationClarity)
	}
	if a.KeyStrength == "" || a.TechnicalImprovement == "" || a.FollowUpQuestion == "" {
		t.Errorf("neutral analysis has empty fields: %+v", a)
	}
}

func turnsWithAnswers(answers ...string) []types.TurnAnalysis {
	turns := make([]types.TurnAnalysis, len(answers))
	for i, a := range answers {
		turns[i] = types.TurnAnalysis{
			Question: "q",
			Answer:   a,
		}
	}
	return turns
}

func TestFallbackReportDetectsTechTerms(t *testing.T) {
	turns := turnsWithAnswers(
		"I built the frontend in React and JavaScript.",
		"The backend runs Node with a SQL database on AWS.",
	)

	report := fallbackReport(turns)

	for _, term := range []string{"react", "javascript", "node"} {
		if !strings.Contains(strings.ToLower(report.TechnicalAssessment), term) {
			t.Errorf("assessment %q does not mention detected term %q", report.TechnicalAssessment, term)
		}
	}
}

func TestFallbackReportVerbosityClasses(t *testing.T) {
	long := strings.Repeat("We used python on aws with microservices and a sql database. ", 5)

	tests := []struct {
		name    string
		answers []string
		marker  string
	}{
		{
			name:    "concise answers",
			answers: []string{"Used python.", "On aws."},
			marker:  "concise",
		},
		{
			name:    "detailed answers",
			answers: []string{long, long},
			marker:  "detailed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := fallbackReport(turnsWithAnswers(tt.answers...))
			if !strings.Contains(report.TechnicalAssessment, tt.marker) {
				t.Errorf("assessment %q does not classify answers as %s", report.TechnicalAssessment, tt.marker)
			}
		})
	}
}

func TestFallbackReportAlwaysComplete(t *testing.T) {
	tests := []struct {
		name  string
		turns []types.TurnAnalysis
	}{
		{"no turns", nil},
		{"empty answers", turnsWithAnswers("", "", "")},
		{"no tech terms", turnsWithAnswers("I enjoy solving problems with my team.")},
		{"rich answers", turnsWithAnswers("We run react, node and aws with ci/cd and devops practices everywhere.")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := fallbackReport(tt.turns)

			if report.TechnicalAssessment == "" {
				t.Error("empty technicalAssessment")
			}
			if len(report.ArchitectureStrengths) == 0 {
				t.Error("empty architectureStrengths")
			}
			if len(report.TechnicalImprovements) == 0 {
				t.Error("empty technicalImprovements")
			}
			if len(report.LearningPath) == 0 {
				t.Error("empty learningPath")
			}
		})
	}
}

func TestFallbackReportNoTermsStaysGeneral(t *testing.T) {
	report := fallbackReport(turnsWithAnswers("I like collaborating closely with designers."))

	if !strings.Contains(report.TechnicalAssessment, "general level") {
		t.Errorf("assessment %q should note the lack of specific technologies", report.TechnicalAssessment)
	}
}
