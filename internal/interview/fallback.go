package interview

import (
	"fmt"
	"strings"

	"careerpilot/internal/types"
)

// FallbackFirstQuestion is asked when the generator cannot produce a valid
// opening question.
const FallbackFirstQuestion = "Could you tell me about your most recent project and the technologies you used?"

// techTerms is the fixed vocabulary scanned by the fallback report.
var techTerms = []string{
	"javascript", "python", "react", "node", "aws", "cloud",
	"database", "sql", "nosql", "frontend", "backend", "fullstack",
	"agile", "scrum", "devops", "ci/cd", "microservices", "architecture",
}

// detailedAnswerThreshold is the mean answer length above which answers are
// classified as detailed rather than concise.
const detailedAnswerThreshold = 200

// neutralAnalysis is the default per-turn record used when answer
// evaluation fails.
func neutralAnalysis() types.AnswerAnalysis {
	return types.AnswerAnalysis{
		TechnicalAccuracy:    7,
		ProblemSolving:       7,
		CommunicationClarity: 7,
		KeyStrength:          "Demonstrated technical knowledge",
		TechnicalImprovement: "Could provide more implementation details",
		FollowUpQuestion:     "Could you elaborate on the technical implementation?",
	}
}

// fallbackReport synthesizes a final report from the raw session data. Used
// only when report generation fails; it always produces a non-empty report
// grounded in the candidate's actual answers.
func fallbackReport(turns []types.TurnAnalysis) types.InterviewReport {
	var totalLen int
	var allAnswers strings.Builder
	for _, t := range turns {
		totalLen += len(t.Answer)
		allAnswers.WriteString(strings.ToLower(t.Answer))
		allAnswers.WriteByte(' ')
	}

	meanLen := 0
	if len(turns) > 0 {
		meanLen = totalLen / len(turns)
	}
	detailed := meanLen > detailedAnswerThreshold

	corpus := allAnswers.String()
	var detected []string
	for _, term := range techTerms {
		if strings.Contains(corpus, term) {
			detected = append(detected, term)
		}
	}

	verbosity := "concise"
	if detailed {
		verbosity = "detailed"
	}

	assessment := fmt.Sprintf("The candidate completed %d interview questions with %s responses.", len(turns), verbosity)
	if len(detected) > 0 {
		assessment += fmt.Sprintf(" Their answers referenced %s.", joinTerms(detected))
	} else {
		assessment += " Their answers stayed at a general level without naming specific technologies."
	}

	var strengths []string
	if detailed {
		strengths = append(strengths, "Provided thorough, well-developed answers")
	} else {
		strengths = append(strengths, "Communicated answers concisely")
	}
	for _, term := range firstN(detected, 3) {
		strengths = append(strengths, "Demonstrated familiarity with "+term)
	}
	strengths = append(strengths, "Maintained engagement through the full interview")

	var improvements []string
	if detailed {
		improvements = append(improvements, "Structure long answers around the key decision points")
	} else {
		improvements = append(improvements, "Expand answers with more implementation detail and concrete examples")
	}
	improvements = append(improvements, "Quantify outcomes and trade-offs when describing past work")
	if len(detected) < 3 {
		improvements = append(improvements, "Reference specific technologies and tools more explicitly")
	}

	var learning []string
	for _, term := range firstN(detected, 3) {
		learning = append(learning, "Deepen hands-on experience with "+term)
	}
	learning = append(learning, "Practice explaining system design decisions out loud")
	if len(detected) == 0 {
		learning = append(learning, "Review fundamentals of common software architecture patterns")
	}

	return types.InterviewReport{
		TechnicalAssessment:   assessment,
		ArchitectureStrengths: strengths,
		TechnicalImprovements: improvements,
		LearningPath:          learning,
	}
}

func joinTerms(terms []string) string {
	shown := firstN(terms, 5)
	if len(shown) == 1 {
		return shown[0]
	}
	return strings.Join(shown[:len(shown)-1], ", ") + " and " + shown[len(shown)-1]
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
