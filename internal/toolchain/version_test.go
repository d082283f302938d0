package toolchain

import (
	"testing"
)

func TestParseDartVersion(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{"stable", "Dart SDK version: 3.4.3 (stable) (Tue Jun 4 19:51:39 2024 +0000) on \"macos_arm64\"", "3.4.3", false},
		{"beta", "Dart SDK version: 3.5.0-180.3.beta (beta)", "3.5.0-180.3.beta", false},
		{"garbage", "command not found", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseDartVersion(tt.output)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDartVersion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && v.String() != tt.want {
				t.Errorf("ParseDartVersion() = %s, want %s", v, tt.want)
			}
		})
	}
}

func TestParseFlutterVersion(t *testing.T) {
	out := "Flutter 3.22.2 • channel stable • https://github.com/flutter/flutter.git\nTools • Dart 3.4.3 • DevTools 2.34.3\n"
	v, err := ParseFlutterVersion(out)
	if err != nil {
		t.Fatalf("ParseFlutterVersion() error = %v", err)
	}
	if v.String() != "3.22.2" {
		t.Errorf("ParseFlutterVersion() = %s", v)
	}
}

func TestSatisfiesSDK(t *testing.T) {
	tests := []struct {
		constraint string
		version    string
		want       bool
	}{
		{">=3.0.0 <4.0.0", "3.4.3", true},
		{">=3.0.0 <4.0.0", "2.19.6", false},
		{"^3.4.0", "3.5.1", true},
		{"^3.4.0", "3.3.0", false},
	}
	for _, tt := range tests {
		t.Run(tt.constraint+"/"+tt.version, func(t *testing.T) {
			v, err := ParseDartVersion("Dart SDK version: " + tt.version)
			if err != nil {
				t.Fatal(err)
			}
			got, err := SatisfiesSDK(tt.constraint, v)
			if err != nil {
				t.Fatalf("SatisfiesSDK() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SatisfiesSDK(%q, %s) = %v, want %v", tt.constraint, tt.version, got, tt.want)
			}
		})
	}
}

func TestSatisfiesSDKInvalidConstraint(t *testing.T) {
	v, _ := ParseDartVersion("Dart SDK version: 3.4.3")
	if _, err := SatisfiesSDK("not a constraint", v); err == nil {
		t.Error("expected error for invalid constraint")
	}
}

func TestAppVersion(t *testing.T) {
	v, err := AppVersion("1.2.3+4")
	if err != nil {
		t.Fatalf("AppVersion() error = %v", err)
	}
	if v.Major() != 1 || v.Minor() != 2 || v.Patch() != 3 || v.Metadata() != "4" {
		t.Errorf("AppVersion() = %s", v)
	}
	if _, err := AppVersion("1.2"); err == nil {
		t.Error("expected error for incomplete version")
	}
}

func TestLookupToolsMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	for _, st := range LookupTools(DefaultTools()) {
		if st.Found {
			t.Errorf("%s unexpectedly found at %s", st.Name, st.Path)
		}
	}
}
