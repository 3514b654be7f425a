package resume

import (
	"context"

	"github.com/Abraxas-365/resumeforge/pkg/kernel"
)

type Repository interface {
	Save(ctx context.Context, e Enhancement) error
	FindByID(ctx context.Context, id kernel.EnhancementID) (*Enhancement, error)
	List(ctx context.Context, opts kernel.PaginationOptions) (kernel.Paginated[Enhancement], error)
}

// Extractor turns an uploaded file into plain text.
type Extractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

// Enhancer rewrites resume text. It must never return text that scores
// below the input.
type Enhancer interface {
	Enhance(ctx context.Context, text string) (Outcome, error)
}

// Renderer lays enhanced text out as a PDF document.
type Renderer interface {
	Render(text string) ([]byte, error)
}
