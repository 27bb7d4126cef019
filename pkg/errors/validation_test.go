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
		{"single letter", "a", false},
		{"word", "source", false},
		{"with dash", "node-1", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 33), true},
		{"space", "a b", true},
		{"tab", "a\tb", true},
		{"comma", "a,b", true},
		{"arrow", "a->b", true},
		{"null byte", "a\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidNode) {
				t.Errorf("ValidateNodeID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidNode)
			}
		})
	}
}

func TestValidateLevelName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"reference", "level-5-12", false},
		{"dotted", "world.3", false},
		{"underscore", "my_level", false},

		{"empty", "", true},
		{"too long", strings.Repeat("l", 65), true},
		{"slash", "levels/one", true},
		{"traversal", "a..b", true},
		{"leading dot", ".hidden", true},
		{"space", "level one", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLevelName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLevelName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLogPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "level-5-12-logs/run.txt", false},
		{"absolute", "/tmp/run.txt", false},
		{"bare name", "run.txt", false},

		{"empty", "", true},
		{"too long", strings.Repeat("p", 501), true},
		{"null byte", "run\x00.txt", true},
		{"newline", "run\n.txt", true},
		{"directory", "logs/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLogPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLogPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
