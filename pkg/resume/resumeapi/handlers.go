// Package resumeapi exposes the resume service over fiber: the HTML upload
// flow and the JSON API under /api/v1.
package resumeapi

import (
	"context"
	"io"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/kernel"
	"github.com/Abraxas-365/resumeforge/pkg/ratelimit"
	"github.com/Abraxas-365/resumeforge/pkg/resume"
	"github.com/Abraxas-365/resumeforge/pkg/resume/ats"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumejobs"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumesrv"
	"github.com/gofiber/fiber/v2"
)

// Service is the resume pipeline as seen by the handlers.
type Service interface {
	Process(ctx context.Context, up resume.Upload) (*resume.Result, error)
	Download(ctx context.Context, name string) (*resumesrv.Download, error)
	ScoreText(text string) (ats.Breakdown, error)
	History(ctx context.Context, opts kernel.PaginationOptions) (kernel.Paginated[resume.Enhancement], error)
	Get(ctx context.Context, id kernel.EnhancementID) (*resume.Enhancement, error)
}

// Jobs queues enhancements for background processing.
type Jobs interface {
	Enqueue(ctx context.Context, up resume.Upload, notifyEmail string) (kernel.JobID, error)
	Status(ctx context.Context, id kernel.JobID) (*resumejobs.Status, error)
}

type Config struct {
	AppName string
	Limiter ratelimit.Limiter
	Window  time.Duration

	// Jobs is nil when Redis is not configured.
	Jobs Jobs
}

type Handlers struct {
	service Service
	jobs    Jobs
	appName string

	pageLimit fiber.Handler
	apiLimit  fiber.Handler
}

func NewHandlers(service Service, cfg Config) *Handlers {
	h := &Handlers{service: service, jobs: cfg.Jobs, appName: cfg.AppName}

	h.pageLimit = ratelimit.New(ratelimit.Config{
		Limiter: cfg.Limiter,
		Window:  cfg.Window,
		OnLimited: func(c *fiber.Ctx, _ ratelimit.Decision) error {
			setFlash(c, ratelimit.ExceededMessage(cfg.Window))
			return c.Redirect("/", fiber.StatusFound)
		},
	})
	h.apiLimit = ratelimit.New(ratelimit.Config{Limiter: cfg.Limiter, Window: cfg.Window})
	return h
}

func (h *Handlers) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.index)
	app.Post("/upload", h.pageLimit, h.upload)
	app.Get("/download/:filename", h.download)

	api := app.Group("/api/v1")
	api.Post("/resumes", h.apiLimit, h.createResume)
	api.Post("/ats/score", h.scoreText)
	api.Get("/resumes/enhancements", h.listEnhancements)
	api.Get("/resumes/enhancements/:id", h.getEnhancement)
	api.Post("/resumes/jobs", h.apiLimit, h.createJob)
	api.Get("/resumes/jobs/:id", h.getJob)
}

// readUpload loads the "file" form field. A missing field reads as an
// upload without a name, which validation rejects.
func readUpload(c *fiber.Ctx) (resume.Upload, error) {
	up := resume.Upload{ClientIP: ratelimit.ClientKey(c)}

	fh, err := c.FormFile("file")
	if err != nil {
		return up, nil
	}
	up.Filename = fh.Filename
	if up.Filename == "" {
		return up, nil
	}

	f, err := fh.Open()
	if err != nil {
		return up, resume.ErrProcessingFailed(err)
	}
	defer f.Close()

	if up.Data, err = io.ReadAll(f); err != nil {
		return up, resume.ErrProcessingFailed(err)
	}
	return up, nil
}
