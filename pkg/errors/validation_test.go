package errors

import (
	"testing"
)

func TestValidateLayerName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Icon", false},
		{"valid with space", "Close Button", false},
		{"valid with dot", "btn.close", false},
		{"valid unicode", "標題", false},

		{"empty", "", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"valid ellipsis", "Loading...", false},
		{"valid dotted prefix", "Menu..Title", false},
		{"parent dir", "..", true},
		{"current dir", ".", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayerName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLayerName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDocumentPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"yaml", "ui/main.yaml", false},
		{"yml", "main.yml", false},
		{"json upper", "MAIN.JSON", false},
		{"absolute", "/tmp/ui/main.yaml", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"psd", "main.psd", true},
		{"no extension", "main", true},
		{"null byte", "foo\x00.yaml", true},
		{"newline", "foo\n.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateDocumentPath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}
