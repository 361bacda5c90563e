package util

import "testing"

func TestCleanVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"main-v12.0.1376-g7ac6f3", "12.0.1376-g7ac6f3"},
		{"develop-v2.3.4", "2.3.4"},
		{"v1.2.3", "v1.2.3"},
		{"1.2.3", "1.2.3"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanVersion(tt.input); got != tt.expected {
			t.Errorf("CleanVersion(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseSemver(t *testing.T) {
	parsed := ParseSemver("1.2.3-beta.1+build.42")
	if parsed == nil {
		t.Fatal("ParseSemver returned nil")
	}
	if parsed.Major == nil || *parsed.Major != 1 {
		t.Errorf("Major = %v, want 1", parsed.Major)
	}
	if parsed.Minor == nil || *parsed.Minor != 2 {
		t.Errorf("Minor = %v, want 2", parsed.Minor)
	}
	if parsed.Patch == nil || *parsed.Patch != 3 {
		t.Errorf("Patch = %v, want 3", parsed.Patch)
	}
	if parsed.Prerelease != "beta.1" {
		t.Errorf("Prerelease = %q, want %q", parsed.Prerelease, "beta.1")
	}
	if parsed.BuildMetadata != "build.42" {
		t.Errorf("BuildMetadata = %q, want %q", parsed.BuildMetadata, "build.42")
	}

	if ParseSemver("") != nil {
		t.Error("ParseSemver(\"\") must return nil")
	}
}

func TestParseSemanticVersionGoPrefix(t *testing.T) {
	parsed := ParseSemanticVersion("go1.22.2")
	if parsed.Major == nil || *parsed.Major != 1 || parsed.Minor == nil || *parsed.Minor != 22 {
		t.Errorf("ParseSemanticVersion(go1.22.2) = %+v, want 1.22.2", parsed)
	}
}

func TestCleanPURL(t *testing.T) {
	got, err := CleanPURL("pkg:golang/github.com/gin-gonic/gin@v1.9.0?goos=linux")
	if err != nil {
		t.Fatalf("CleanPURL error: %v", err)
	}
	want := "pkg:golang/github.com/gin-gonic/gin@v1.9.0"
	if got != want {
		t.Errorf("CleanPURL = %q, want %q", got, want)
	}

	if _, err := CleanPURL("not-a-purl"); err == nil {
		t.Error("CleanPURL must reject malformed input")
	}
}

func TestGetBasePURL(t *testing.T) {
	got, err := GetBasePURL("pkg:apk/wolfi/glibc@2.42-r4")
	if err != nil {
		t.Fatalf("GetBasePURL error: %v", err)
	}
	if want := "pkg:apk/wolfi/glibc"; got != want {
		t.Errorf("GetBasePURL = %q, want %q", got, want)
	}
}

func TestGetSeverityRating(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{0, "NONE"},
		{0.1, "LOW"},
		{3.9, "LOW"},
		{4.0, "MEDIUM"},
		{6.9, "MEDIUM"},
		{7.0, "HIGH"},
		{8.5, "HIGH"},
		{9.0, "CRITICAL"},
		{10.0, "CRITICAL"},
	}

	for _, tt := range tests {
		if got := GetSeverityRating(tt.score); got != tt.expected {
			t.Errorf("GetSeverityRating(%v) = %q, want %q", tt.score, got, tt.expected)
		}
	}
}
