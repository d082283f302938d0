package project

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateValid(t *testing.T) {
	data := []byte(`name: shop_app
description: A shop.
version: 1.2.3+4
environment:
  sdk: ">=3.0.0 <4.0.0"
dependencies:
  flutter:
    sdk: flutter
flutter:
  uses-material-design: true
`)
	result, err := Validate(data)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid pubspec, got issues: %v", result.Issues)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{"missing name", "version: 1.0.0\n", ""},
		{"bad name", "name: Shop-App\n", "/name"},
		{"bad version", "name: shop\nversion: latest\n", "/version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate([]byte(tt.data))
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if result.Valid {
				t.Fatal("expected invalid result")
			}
			if len(result.Issues) == 0 {
				t.Fatal("expected at least one issue")
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Path == tt.wantPath {
					found = true
				}
				if issue.Message == "" {
					t.Errorf("issue without message: %+v", issue)
				}
			}
			if !found {
				t.Errorf("no issue at path %q: %v", tt.wantPath, result.Issues)
			}
		})
	}
}

func TestValidateFileMissing(t *testing.T) {
	_, err := ValidateFile(filepath.Join(t.TempDir(), PubspecFile))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want not found", err)
	}
}
