// Package resumesrv orchestrates the resume pipeline: store the upload,
// extract, score, enhance, render and record the result.
package resumesrv

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
	"github.com/Abraxas-365/resumeforge/pkg/fsx"
	"github.com/Abraxas-365/resumeforge/pkg/kernel"
	"github.com/Abraxas-365/resumeforge/pkg/logx"
	"github.com/Abraxas-365/resumeforge/pkg/resume"
	"github.com/Abraxas-365/resumeforge/pkg/resume/ats"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service struct {
	uploads   fsx.FileSystem
	enhanced  fsx.FileSystem
	extractor resume.Extractor
	enhancer  resume.Enhancer
	renderer  resume.Renderer
	repo      resume.Repository
	now       func() time.Time
}

func NewService(
	uploads fsx.FileSystem,
	enhanced fsx.FileSystem,
	extractor resume.Extractor,
	enhancer resume.Enhancer,
	renderer resume.Renderer,
	repo resume.Repository,
) *Service {
	return &Service{
		uploads:   uploads,
		enhanced:  enhanced,
		extractor: extractor,
		enhancer:  enhancer,
		renderer:  renderer,
		repo:      repo,
		now:       time.Now,
	}
}

// Validate checks the upload name before anything is written.
func Validate(up resume.Upload) error {
	if up.Filename == "" {
		return resume.ErrNoFile()
	}
	if !resume.AllowedFile(up.Filename) {
		return resume.ErrInvalidFileType().WithDetail("filename", up.Filename)
	}
	return nil
}

// Store validates an upload and writes it under a collision free name.
func (s *Service) Store(ctx context.Context, up resume.Upload) (*resume.StoredUpload, error) {
	if err := Validate(up); err != nil {
		return nil, err
	}

	path := resume.StoredUploadName(resume.StorageFilename(up.Filename))
	if err := s.uploads.WriteFile(ctx, path, up.Data); err != nil {
		return nil, resume.ErrProcessingFailed(err)
	}

	return &resume.StoredUpload{Path: path, OriginalFilename: up.Filename, ClientIP: up.ClientIP}, nil
}

// Process runs the whole pipeline for a fresh upload.
func (s *Service) Process(ctx context.Context, up resume.Upload) (*resume.Result, error) {
	stored, err := s.Store(ctx, up)
	if err != nil {
		return nil, err
	}
	defer s.discard(ctx, stored.Path)

	return s.process(ctx, stored, up.Data)
}

// ProcessStored runs the pipeline for an upload written earlier by Store.
// The upload is deleted unless the failure is Retryable, in which case it
// stays for the next attempt and the upload sweeper reclaims it otherwise.
func (s *Service) ProcessStored(ctx context.Context, stored resume.StoredUpload) (*resume.Result, error) {
	data, err := s.uploads.ReadFile(ctx, stored.Path)
	if err != nil {
		if errx.Is(err, fsx.ErrNotFound) {
			return nil, resume.ErrFileNotFound().WithDetail("path", stored.Path)
		}
		return nil, resume.ErrProcessingFailed(err)
	}

	res, err := s.process(ctx, &stored, data)
	if err == nil || !Retryable(err) {
		s.discard(ctx, stored.Path)
	}
	return res, err
}

// Retryable reports whether a processing error may clear on another attempt.
// Validation and content problems never do.
func Retryable(err error) bool {
	return errx.IsType(err, errx.TypeInternal) || errx.IsType(err, errx.TypeExternal)
}

func (s *Service) process(ctx context.Context, stored *resume.StoredUpload, data []byte) (*resume.Result, error) {
	log := logx.WithContext(ctx).WithField("filename", stored.OriginalFilename)

	text, err := s.extractor.Extract(ctx, stored.Path, data)
	if err != nil {
		var domainErr *errx.Error
		if errx.As(err, &domainErr) {
			return nil, err
		}
		return nil, resume.ErrProcessingFailed(err)
	}
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < resume.MinExtractedChars {
		log.WithField("chars", utf8.RuneCountInString(text)).Warn("Extracted text too short")
		return nil, resume.ErrInsufficientText()
	}

	original := ats.Analyze(text)
	log = log.WithField("original_score", original.Total)

	outcome, err := s.enhancer.Enhance(ctx, text)
	if err != nil {
		return nil, resume.ErrProcessingFailed(err)
	}

	enhanced := ats.Analyze(outcome.Text)
	if enhanced.Total < original.Total {
		log.WithField("enhanced_score", enhanced.Total).Warn("Enhanced score lower than original, keeping original")
		outcome = resume.Outcome{Text: text, Source: resume.SourceOriginal}
		enhanced = original
	}

	pdf, err := s.renderer.Render(outcome.Text)
	if err != nil {
		return nil, resume.ErrRenderFailed(err)
	}

	name := resume.EnhancedFilename(resume.StorageFilename(stored.OriginalFilename))
	if err := s.enhanced.WriteFile(ctx, name, pdf); err != nil {
		return nil, resume.ErrRenderFailed(err).WithDetail("stage", "store")
	}

	record := resume.Enhancement{
		ID:               kernel.NewEnhancementID(),
		OriginalFilename: stored.OriginalFilename,
		EnhancedFilename: name,
		OriginalScore:    original.Total,
		EnhancedScore:    enhanced.Total,
		Source:           outcome.Source,
		Model:            outcome.Model,
		ClientIP:         stored.ClientIP,
		CreatedAt:        s.now().UTC(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		log.WithError(err).Error("Failed to record enhancement history")
	}

	log.WithFields(logx.Fields{
		"enhanced_score": enhanced.Total,
		"source":         outcome.Source,
		"model":          outcome.Model,
		"enhanced_file":  name,
	}).Info("Resume enhanced")

	return &resume.Result{
		Enhancement:       record,
		OriginalBreakdown: original,
		EnhancedBreakdown: enhanced,
		OriginalPreview:   resume.Preview(text),
		EnhancedPreview:   resume.Preview(outcome.Text),
		DownloadURL:       "/download/" + name,
	}, nil
}

// Discard deletes a stored upload that will not be processed.
func (s *Service) Discard(ctx context.Context, stored resume.StoredUpload) {
	s.discard(ctx, stored.Path)
}

func (s *Service) discard(ctx context.Context, path string) {
	// The request context may already be cancelled.
	if err := s.uploads.DeleteFile(context.WithoutCancel(ctx), path); err != nil {
		logx.WithContext(ctx).WithError(err).WithField("path", path).Warn("Failed to delete upload")
	}
}

// Download is a rendered PDF ready to send.
type Download struct {
	Filename string
	Data     []byte
}

// Download reads an enhanced PDF by its public name.
func (s *Service) Download(ctx context.Context, name string) (*Download, error) {
	name = resume.SecureFilename(name)

	data, err := s.enhanced.ReadFile(ctx, name)
	if err != nil {
		if errx.Is(err, fsx.ErrNotFound) {
			return nil, resume.ErrFileNotFound().WithDetail("filename", name)
		}
		return nil, resume.ErrDownloadFailed(err)
	}
	return &Download{Filename: name, Data: data}, nil
}

// ScoreText scores text without enhancing it.
func (s *Service) ScoreText(text string) (ats.Breakdown, error) {
	if strings.TrimSpace(text) == "" {
		return ats.Breakdown{}, resume.ErrEmptyText()
	}
	return ats.Analyze(text), nil
}

// History lists past enhancements, newest first.
func (s *Service) History(ctx context.Context, opts kernel.PaginationOptions) (kernel.Paginated[resume.Enhancement], error) {
	return s.repo.List(ctx, opts.Normalize(defaultPageSize, maxPageSize))
}

func (s *Service) Get(ctx context.Context, id kernel.EnhancementID) (*resume.Enhancement, error) {
	return s.repo.FindByID(ctx, id)
}
