package aigemini_test

import (
	"errors"
	"testing"

	"github.com/Abraxas-365/resumeforge/pkg/ai/providers/aigemini"
	"github.com/Abraxas-365/resumeforge/pkg/errx"
)

func TestParseGeminiError(t *testing.T) {
	cases := []struct {
		msg  string
		code string
	}{
		{"Error 403: API key not valid", "GEMINI_API_UNAUTHORIZED"},
		{"RESOURCE EXHAUSTED: quota", "GEMINI_API_RATE_LIMIT"},
		{"models/gemini-9 is not found", "GEMINI_MODEL_NOT_FOUND"},
		{"connection reset", "GEMINI_API_REQUEST_FAILED"},
	}
	for _, tc := range cases {
		got := aigemini.ParseGeminiError(errors.New(tc.msg))
		if got.Code != tc.code {
			t.Fatalf("ParseGeminiError(%q) = %s, want %s", tc.msg, got.Code, tc.code)
		}
	}

	existing := errx.Validation("already mapped")
	if aigemini.ParseGeminiError(existing) != existing {
		t.Fatal("existing errx errors must pass through")
	}
	if aigemini.ParseGeminiError(nil) != nil {
		t.Fatal("nil in, nil out")
	}
}
