package entity

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{
			name:    "valid https URL",
			url:     "https://example.com/news/story",
			wantErr: false,
		},
		{
			name:    "valid http URL",
			url:     "http://example.com/news/story",
			wantErr: false,
		},
		{
			name:    "valid URL with query",
			url:     "https://example.com/story?id=42",
			wantErr: false,
		},
		{
			name:    "empty URL",
			url:     "",
			wantErr: true,
		},
		{
			name:    "invalid scheme - ftp",
			url:     "ftp://example.com/story",
			wantErr: true,
		},
		{
			name:    "invalid scheme - javascript",
			url:     "javascript:alert(1)",
			wantErr: true,
		},
		{
			name:    "no host",
			url:     "https://",
			wantErr: true,
		},
		{
			name:    "too long",
			url:     "https://example.com/" + strings.Repeat("a", 2100),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidationError_MatchesCategory(t *testing.T) {
	var err error = &ValidationError{Field: "title", Message: "is required"}

	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("err = %v, want it to match ErrValidationFailed", err)
	}
	if got := err.Error(); !strings.Contains(got, "title") {
		t.Errorf("Error() = %q, want the field name included", got)
	}
}

func TestArticle_IsAdmin(t *testing.T) {
	admin := &Article{SourceTag: SourceAdmin}
	if !admin.IsAdmin() {
		t.Error("expected admin article to report IsAdmin")
	}

	external := &Article{SourceTag: "newsapi"}
	if external.IsAdmin() {
		t.Error("expected external article to not report IsAdmin")
	}
}
