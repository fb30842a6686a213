package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty is allowed", "", false},
		{"simple", "greet", false},
		{"with dash", "ask-name", false},
		{"with dot", "step.1", false},
		{"uuid", "0b6d5a4e-8f5e-4f57-9d8e-2f1e7b0c9a11", false},

		{"too long", strings.Repeat("a", 300), true},
		{"slash", "a/b", true},
		{"space", "a b", true},
		{"tab", "a\tb", true},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDocument) {
				t.Errorf("ValidateNodeID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidDocument)
			}
		})
	}
}

func TestValidateDocumentFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"json", "welcome.json", false},
		{"toml", "welcome.toml", false},
		{"upper case ext", "welcome.JSON", false},

		{"empty", "", true},
		{"with path /", "flows/welcome.json", true},
		{"with path \\", "flows\\welcome.json", true},
		{"hidden", ".welcome.json", true},
		{"yaml", "welcome.yaml", true},
		{"no ext", "welcome", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/flow.svg", false},
		{"absolute", "/tmp/flow.svg", false},
		{"dots in name", "flow..v2.svg", false},

		{"empty", "", true},
		{"traversal", "../flow.svg", true},
		{"nested traversal", "out/../../flow.svg", true},
		{"null byte", "flow\x00.svg", true},
		{"too long", strings.Repeat("a", 600), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
