package errors

import (
	"testing"
)

func TestValidateDiagramName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "pipeline", false},
		{"valid with dash", "my-diagram", false},
		{"valid with space", "sum of squares", false},
		{"valid with dot", "v1.2", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo..bar", true},
		{"slash", "foo/bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDiagramName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDiagramName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateDiagramName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateNodeType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "constant", false},
		{"valid dashed", "moving-average", false},
		{"valid dotted", "math.add", false},
		{"valid digits", "filter2", false},

		{"empty", "", true},
		{"uppercase", "Constant", true},
		{"leading digit", "2x", true},
		{"trailing dash", "add-", true},
		{"double dash", "a--b", true},
		{"space", "a b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeNotConnectable,
		ErrCodeUnknownNodeType,
		ErrCodeNoConnectablePort,
		ErrCodeNodeNotFound,
		ErrCodePortNotFound,
		ErrCodeEdgeNotFound,
		ErrCodeDiagramNotFound,
		ErrCodeDuplicateNodeType,
		ErrCodeUnsupportedFormat,
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidName,
		ErrCodeInvalidPath,
		ErrCodeNothingToUndo,
		ErrCodeNothingToRedo,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
