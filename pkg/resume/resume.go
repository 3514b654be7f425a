// Package resume holds the domain types shared by the resume pipeline:
// uploads, enhancement records and the ports the service orchestrates.
package resume

import (
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/kernel"
	"github.com/Abraxas-365/resumeforge/pkg/resume/ats"
)

// MinExtractedChars is the shortest trimmed text worth scoring.
const MinExtractedChars = 50

// PreviewLength is the number of characters shown on the result page.
const PreviewLength = 500

// Source tells which stage produced the enhanced text.
type Source string

const (
	SourceAI                 Source = "ai"
	SourceSmartFallback      Source = "smart_fallback"
	SourceStructuredFallback Source = "structured_fallback"
	SourceOriginal           Source = "original"
)

// Upload is a file received from a client.
type Upload struct {
	Filename string
	Data     []byte
	ClientIP string
}

// StoredUpload points at an upload already written to the upload store.
type StoredUpload struct {
	Path             string `json:"path"`
	OriginalFilename string `json:"original_filename"`
	ClientIP         string `json:"client_ip,omitempty"`
}

// Outcome is what an Enhancer produced.
type Outcome struct {
	Text   string
	Source Source
	Model  string
}

// Enhancement is the persisted record of one processed resume.
type Enhancement struct {
	ID               kernel.EnhancementID `db:"id" json:"id"`
	OriginalFilename string               `db:"original_filename" json:"original_filename"`
	EnhancedFilename string               `db:"enhanced_filename" json:"enhanced_filename"`
	OriginalScore    int                  `db:"original_score" json:"original_score"`
	EnhancedScore    int                  `db:"enhanced_score" json:"enhanced_score"`
	Source           Source               `db:"source" json:"source"`
	Model            string               `db:"model" json:"model,omitempty"`
	ClientIP         string               `db:"client_ip" json:"-"`
	CreatedAt        time.Time            `db:"created_at" json:"created_at"`
}

// Improvement is the score delta, never negative.
func (e Enhancement) Improvement() int {
	return max(0, e.EnhancedScore-e.OriginalScore)
}

// Result is returned to the client after processing.
type Result struct {
	Enhancement
	OriginalBreakdown ats.Breakdown `json:"original_breakdown"`
	EnhancedBreakdown ats.Breakdown `json:"enhanced_breakdown"`
	OriginalPreview   string        `json:"original_preview"`
	EnhancedPreview   string        `json:"enhanced_preview"`
	DownloadURL       string        `json:"download_url"`
}
