package common

import (
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	defaultFormats := []string{"json", "text", "markdown"}

	tests := []struct {
		name             string
		format           string
		supportedFormats []string
		expectedError    string
	}{
		{
			name:             "json is supported",
			format:           "json",
			supportedFormats: defaultFormats,
		},
		{
			name:             "text is supported",
			format:           "text",
			supportedFormats: defaultFormats,
		},
		{
			name:             "markdown is supported",
			format:           "markdown",
			supportedFormats: defaultFormats,
		},
		{
			name:             "xml is rejected",
			format:           "xml",
			supportedFormats: defaultFormats,
			expectedError:    "unsupported output format 'xml'. Supported formats: [json text markdown]",
		},
		{
			name:             "format matching is case sensitive",
			format:           "JSON",
			supportedFormats: defaultFormats,
			expectedError:    "unsupported output format 'JSON'. Supported formats: [json text markdown]",
		},
		{
			name:             "empty format is rejected",
			format:           "",
			supportedFormats: defaultFormats,
			expectedError:    "unsupported output format ''. Supported formats: [json text markdown]",
		},
		{
			name:             "empty supported list allows anything",
			format:           "xml",
			supportedFormats: []string{},
		},
		{
			name:             "restricted single format",
			format:           "text",
			supportedFormats: []string{"json"},
			expectedError:    "unsupported output format 'text'. Supported formats: [json]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.supportedFormats)

			if tt.expectedError == "" {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error but got none")
			}
			if err.Error() != tt.expectedError {
				t.Errorf("Expected error '%s', got '%s'", tt.expectedError, err.Error())
			}
		})
	}
}

func TestGetSupportedFormats(t *testing.T) {
	tests := []struct {
		name             string
		supportedFormats []string
	}{
		{name: "default formats", supportedFormats: []string{"json", "text", "markdown"}},
		{name: "single format", supportedFormats: []string{"json"}},
		{name: "no formats", supportedFormats: []string{}},
		{name: "custom formats", supportedFormats: []string{"xml", "yaml", "csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetSupportedFormats(tt.supportedFormats)

			if len(result) != len(tt.supportedFormats) {
				t.Fatalf("Expected %d formats, got %d", len(tt.supportedFormats), len(result))
			}
			for i, expected := range tt.supportedFormats {
				if result[i] != expected {
					t.Errorf("Expected format[%d] = '%s', got '%s'", i, expected, result[i])
				}
			}
		})
	}
}
