package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"careerpilot/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ATSAnalysis", &ATSTextFormatter{})
	registry.RegisterFormatter("markdown", "ATSAnalysis", &ATSMarkdownFormatter{})
	registry.RegisterFormatter("text", "QuestionSetOutput", &QuestionSetTextFormatter{})
	registry.RegisterFormatter("markdown", "QuestionSetOutput", &QuestionSetMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ATSAnalysis:
		return "ATSAnalysis"
	case types.QuestionSetOutput:
		return "QuestionSetOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ATSTextFormatter handles text formatting for ATS analysis results
type ATSTextFormatter struct{}

func (atf *ATSTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ATSAnalysis)
	if !ok {
		return "", fmt.Errorf("expected ATSAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("ATS Score: %d/100\n", result.ATSScore))
	output.WriteString(fmt.Sprintf("Keyword Match: %d/100\n\n", result.KeywordMatch))
	output.WriteString("Feedback:\n")
	output.WriteString(result.Feedback)
	output.WriteString("\n\n")

	if len(result.DetectedKeywords) > 0 {
		output.WriteString("Detected Keywords:\n")
		for _, keyword := range result.DetectedKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", keyword))
		}
		output.WriteString("\n")
	}

	if len(result.MissingKeywords) > 0 {
		output.WriteString("Missing Keywords:\n")
		for _, keyword := range result.MissingKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", keyword))
		}
		output.WriteString("\n")
	}

	if len(result.ResumeStructure) > 0 {
		output.WriteString("=== RESUME STRUCTURE ===\n")
		for _, section := range result.ResumeStructure {
			output.WriteString(fmt.Sprintf("%s [%s]: %s\n", section.Name, section.Status, section.Description))
		}
		output.WriteString("\n")
	}

	if len(result.StrengthsAndWeaknesses.Strengths) > 0 {
		output.WriteString("Strengths:\n")
		for _, strength := range result.StrengthsAndWeaknesses.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}

	if len(result.StrengthsAndWeaknesses.Weaknesses) > 0 {
		output.WriteString("Weaknesses:\n")
		for _, weakness := range result.StrengthsAndWeaknesses.Weaknesses {
			output.WriteString(fmt.Sprintf("- %s\n", weakness))
		}
		output.WriteString("\n")
	}

	if len(result.ImprovementTips) > 0 {
		output.WriteString("=== IMPROVEMENT TIPS ===\n")
		for i, tip := range result.ImprovementTips {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, tip))
		}
	}

	return output.String(), nil
}

func (atf *ATSTextFormatter) SupportedType() string {
	return "ATSAnalysis"
}

// ATSMarkdownFormatter handles markdown formatting for ATS analysis results
type ATSMarkdownFormatter struct{}

func (amf *ATSMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ATSAnalysis)
	if !ok {
		return "", fmt.Errorf("expected ATSAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Analysis\n\n")
	output.WriteString(fmt.Sprintf("**ATS Score:** %d/100\n\n", result.ATSScore))
	output.WriteString(fmt.Sprintf("**Keyword Match:** %d/100\n\n", result.KeywordMatch))
	output.WriteString("## Feedback\n\n")
	output.WriteString(result.Feedback)
	output.WriteString("\n\n")

	if len(result.DetectedKeywords) > 0 {
		output.WriteString("## Detected Keywords\n\n")
		for _, keyword := range result.DetectedKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", keyword))
		}
		output.WriteString("\n")
	}

	if len(result.MissingKeywords) > 0 {
		output.WriteString("## Missing Keywords\n\n")
		for _, keyword := range result.MissingKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", keyword))
		}
		output.WriteString("\n")
	}

	if len(result.ResumeStructure) > 0 {
		output.WriteString("## Resume Structure\n\n")
		for _, section := range result.ResumeStructure {
			output.WriteString(fmt.Sprintf("- **%s** (%s): %s\n", section.Name, section.Status, section.Description))
		}
		output.WriteString("\n")
	}

	if len(result.StrengthsAndWeaknesses.Strengths) > 0 {
		output.WriteString("## Strengths\n\n")
		for _, strength := range result.StrengthsAndWeaknesses.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}

	if len(result.StrengthsAndWeaknesses.Weaknesses) > 0 {
		output.WriteString("## Weaknesses\n\n")
		for _, weakness := range result.StrengthsAndWeaknesses.Weaknesses {
			output.WriteString(fmt.Sprintf("- %s\n", weakness))
		}
		output.WriteString("\n")
	}

	if len(result.ImprovementTips) > 0 {
		output.WriteString("## Improvement Tips\n\n")
		for i, tip := range result.ImprovementTips {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, tip))
		}
	}

	return output.String(), nil
}

func (amf *ATSMarkdownFormatter) SupportedType() string {
	return "ATSAnalysis"
}

// QuestionSetTextFormatter handles text formatting for generated question sets
type QuestionSetTextFormatter struct{}

func (qtf *QuestionSetTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.QuestionSetOutput)
	if !ok {
		return "", fmt.Errorf("expected QuestionSetOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	output.WriteString(result.Analysis)
	output.WriteString("\n\n")

	output.WriteString("=== INTERVIEW QUESTIONS ===\n\n")
	for i, question := range result.Questions {
		output.WriteString(fmt.Sprintf("%d. %s\n", i+1, question))
	}

	return output.String(), nil
}

func (qtf *QuestionSetTextFormatter) SupportedType() string {
	return "QuestionSetOutput"
}

// QuestionSetMarkdownFormatter handles markdown formatting for generated question sets
type QuestionSetMarkdownFormatter struct{}

func (qmf *QuestionSetMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.QuestionSetOutput)
	if !ok {
		return "", fmt.Errorf("expected QuestionSetOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	output.WriteString(result.Analysis)
	output.WriteString("\n\n")

	output.WriteString("## Interview Questions\n\n")
	for i, question := range result.Questions {
		output.WriteString(fmt.Sprintf("%d. %s\n", i+1, question))
	}

	return output.String(), nil
}

func (qmf *QuestionSetMarkdownFormatter) SupportedType() string {
	return "QuestionSetOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
