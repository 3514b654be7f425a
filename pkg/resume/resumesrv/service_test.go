package resumesrv_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
	"github.com/Abraxas-365/resumeforge/pkg/fsx"
	"github.com/Abraxas-365/resumeforge/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/resumeforge/pkg/kernel"
	"github.com/Abraxas-365/resumeforge/pkg/resume"
	"github.com/Abraxas-365/resumeforge/pkg/resume/extract"
	"github.com/Abraxas-365/resumeforge/pkg/resume/render"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumeinfra"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumesrv"
)

const sampleText = `Jane Doe
jane@example.com | Phone: 555-0100 | linkedin.com/in/janedoe
Summary
Backend engineer with six years of experience in payments and billing.
Experience
Senior Developer, Acme, 2019 - 2024
Developed services that increased throughput by 40%.
Skills
Python, SQL, Docker, AWS
Education
Bachelor of Science, State University`

type fakeExtractor struct {
	text string
	err  error
	path string
}

func (f *fakeExtractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	f.path = filename
	return f.text, f.err
}

type fakeEnhancer struct {
	out resume.Outcome
	err error
}

func (f *fakeEnhancer) Enhance(ctx context.Context, text string) (resume.Outcome, error) {
	return f.out, f.err
}

type fakeRenderer struct{ err error }

func (f *fakeRenderer) Render(text string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3 " + text), nil
}

type fixture struct {
	svc       *resumesrv.Service
	uploads   fsx.FileSystem
	enhanced  fsx.FileSystem
	extractor *fakeExtractor
	enhancer  *fakeEnhancer
	renderer  *fakeRenderer
	repo      *resumeinfra.MemoryRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	uploads, err := fsxlocal.NewLocalFileSystem(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	enhanced, err := fsxlocal.NewLocalFileSystem(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	f := &fixture{
		uploads:   uploads,
		enhanced:  enhanced,
		extractor: &fakeExtractor{text: sampleText},
		enhancer: &fakeEnhancer{out: resume.Outcome{
			Text:   "CONTACT INFORMATION\n" + sampleText + "\nleadership, communication, certified",
			Source: resume.SourceAI,
			Model:  "gemini-test",
		}},
		renderer: &fakeRenderer{},
		repo:     resumeinfra.NewMemoryRepository(),
	}
	f.svc = resumesrv.NewService(uploads, enhanced, f.extractor, f.enhancer, f.renderer, f.repo)
	return f
}

func (f *fixture) uploadCount(t *testing.T) int {
	t.Helper()
	files, err := f.uploads.List(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	return len(files)
}

func TestProcess_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Process(ctx, resume.Upload{Filename: "My CV.pdf", Data: []byte("%PDF"), ClientIP: "1.2.3.4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.EnhancedScore < res.OriginalScore {
		t.Fatalf("enhanced score %d below original %d", res.EnhancedScore, res.OriginalScore)
	}
	if res.Source != resume.SourceAI || res.Model != "gemini-test" {
		t.Fatalf("unexpected source %s/%s", res.Source, res.Model)
	}
	if !strings.HasPrefix(res.EnhancedFilename, "enhanced_My_CV_") {
		t.Fatalf("unexpected enhanced filename %q", res.EnhancedFilename)
	}
	if res.DownloadURL != "/download/"+res.EnhancedFilename {
		t.Fatalf("unexpected download url %q", res.DownloadURL)
	}
	if !strings.HasSuffix(f.extractor.path, "_My_CV.pdf") {
		t.Fatalf("extractor got %q", f.extractor.path)
	}
	if n := f.uploadCount(t); n != 0 {
		t.Fatalf("upload must be deleted, %d files left", n)
	}

	dl, err := f.svc.Download(ctx, res.EnhancedFilename)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if !strings.HasPrefix(string(dl.Data), "%PDF-") {
		t.Fatal("expected rendered bytes")
	}

	got, err := f.svc.Get(ctx, res.ID)
	if err != nil || got.ClientIP != "1.2.3.4" {
		t.Fatalf("history record: %v %+v", err, got)
	}
}

func TestProcess_RevertsWhenEnhancementScoresLower(t *testing.T) {
	f := newFixture(t)
	f.enhancer.out = resume.Outcome{Text: "short", Source: resume.SourceAI, Model: "m"}

	res, err := f.svc.Process(context.Background(), resume.Upload{Filename: "cv.pdf", Data: []byte("x")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != resume.SourceOriginal || res.EnhancedScore != res.OriginalScore {
		t.Fatalf("expected revert to original, got %s %d/%d", res.Source, res.OriginalScore, res.EnhancedScore)
	}
	if res.EnhancedPreview != res.OriginalPreview {
		t.Fatal("previews must match after revert")
	}
}

func TestProcess_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Process(ctx, resume.Upload{})
	if !errx.Is(err, resume.ErrNoFile()) {
		t.Fatalf("expected no file, got %v", err)
	}

	_, err = f.svc.Process(ctx, resume.Upload{Filename: "cv.exe", Data: []byte("x")})
	if !errx.Is(err, resume.ErrInvalidFileType()) {
		t.Fatalf("expected invalid type, got %v", err)
	}
	if n := f.uploadCount(t); n != 0 {
		t.Fatalf("rejected uploads must not be stored, found %d", n)
	}
}

func TestProcess_InsufficientText(t *testing.T) {
	f := newFixture(t)
	f.extractor.text = "   too short   "

	_, err := f.svc.Process(context.Background(), resume.Upload{Filename: "scan.png", Data: []byte("x")})
	if !errx.Is(err, resume.ErrInsufficientText()) {
		t.Fatalf("expected insufficient text, got %v", err)
	}
	if errx.StatusOf(err) != 422 {
		t.Fatalf("expected 422, got %d", errx.StatusOf(err))
	}
	if n := f.uploadCount(t); n != 0 {
		t.Fatalf("upload must be deleted on failure, %d left", n)
	}
}

func TestProcess_Failures(t *testing.T) {
	f := newFixture(t)
	f.renderer.err = errors.New("font missing")
	_, err := f.svc.Process(context.Background(), resume.Upload{Filename: "cv.pdf", Data: []byte("x")})
	if !errx.Is(err, resume.ErrRenderFailed(nil)) {
		t.Fatalf("expected render failure, got %v", err)
	}

	f = newFixture(t)
	f.extractor.err = errors.New("boom")
	_, err = f.svc.Process(context.Background(), resume.Upload{Filename: "cv.pdf", Data: []byte("x")})
	if !errx.Is(err, resume.ErrProcessingFailed(nil)) {
		t.Fatalf("expected processing failure, got %v", err)
	}
}

func TestStoreThenProcessStored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stored, err := f.svc.Store(ctx, resume.Upload{Filename: "cv.docx", Data: []byte("doc")})
	if err != nil {
		t.Fatal(err)
	}
	if f.uploadCount(t) != 1 {
		t.Fatal("expected the upload to be stored")
	}

	if _, err := f.svc.ProcessStored(ctx, *stored); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.uploadCount(t) != 0 {
		t.Fatal("expected the upload to be deleted")
	}

	_, err = f.svc.ProcessStored(ctx, *stored)
	if !errx.Is(err, resume.ErrFileNotFound()) {
		t.Fatalf("expected not found for a consumed upload, got %v", err)
	}
}

func TestProcessStored_KeepsUploadForRetry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.renderer.err = errors.New("disk full")

	stored, err := f.svc.Store(ctx, resume.Upload{Filename: "cv.pdf", Data: []byte("x")})
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.svc.ProcessStored(ctx, *stored)
	if !resumesrv.Retryable(err) {
		t.Fatalf("expected a retryable error, got %v", err)
	}
	if f.uploadCount(t) != 1 {
		t.Fatal("expected the upload to survive a retryable failure")
	}

	f.renderer.err = nil
	f.extractor.text = "too short"
	_, err = f.svc.ProcessStored(ctx, *stored)
	if !errx.Is(err, resume.ErrInsufficientText()) || resumesrv.Retryable(err) {
		t.Fatalf("expected a final insufficient text error, got %v", err)
	}
	if f.uploadCount(t) != 0 {
		t.Fatal("expected the upload to be deleted after a final failure")
	}
}

func TestDownload_Missing(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Download(context.Background(), "../../etc/passwd")
	if !errx.Is(err, resume.ErrFileNotFound()) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestScoreTextAndHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.ScoreText("  "); !errx.Is(err, resume.ErrEmptyText()) {
		t.Fatalf("expected empty text error, got %v", err)
	}
	b, err := f.svc.ScoreText(sampleText)
	if err != nil || b.Total <= 0 {
		t.Fatalf("unexpected breakdown %+v %v", b, err)
	}

	for i := 0; i < 3; i++ {
		if _, err := f.svc.Process(ctx, resume.Upload{Filename: "cv.pdf", Data: []byte("x")}); err != nil {
			t.Fatal(err)
		}
	}
	page, err := f.svc.History(ctx, kernel.PaginationOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Page.Total != 3 || page.Page.Size != 20 || page.Page.Number != 1 {
		t.Fatalf("unexpected page %+v", page.Page)
	}
}

func TestSweeper(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"enhanced_a_1.pdf", "enhanced_b_2.pdf", "notes.txt"} {
		if err := f.enhanced.WriteFile(ctx, name, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}

	future := func() time.Time { return time.Now().Add(2 * time.Hour) }
	s := resumesrv.NewSweeper("enhanced", f.enhanced, time.Hour, time.Minute,
		resumesrv.WithMatch(resume.IsEnhancedFilename), resumesrv.WithClock(future))

	n, err := s.Sweep(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}

	fresh := resumesrv.NewSweeper("enhanced", f.enhanced, time.Hour, time.Minute)
	if n, _ := fresh.Sweep(ctx); n != 0 {
		t.Fatalf("fresh files must survive, removed %d", n)
	}
}

func TestProcess_NonASCIIFilenames(t *testing.T) {
	f := newFixture(t)
	pdf, err := render.New().Render(sampleText)
	if err != nil {
		t.Fatal(err)
	}
	svc := resumesrv.NewService(f.uploads, f.enhanced, extract.New(nil), f.enhancer, f.renderer, f.repo)

	for _, name := range []string{"resume.pdf", "резюме.pdf", "履歴書.pdf"} {
		res, err := svc.Process(context.Background(), resume.Upload{Filename: name, Data: pdf})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if !strings.HasPrefix(res.EnhancedFilename, "enhanced_resume_") {
			t.Fatalf("%s: unexpected enhanced filename %q", name, res.EnhancedFilename)
		}
		if res.OriginalFilename != name {
			t.Fatalf("original filename = %q", res.OriginalFilename)
		}
	}
}

func TestProcessStored_ImageWithoutOCRIsFinal(t *testing.T) {
	f := newFixture(t)
	svc := resumesrv.NewService(f.uploads, f.enhanced, extract.New(nil), f.enhancer, f.renderer, f.repo)
	ctx := context.Background()

	stored, err := svc.Store(ctx, resume.Upload{Filename: "photo.png", Data: []byte{0x89, 'P', 'N', 'G'}})
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.ProcessStored(ctx, *stored)
	if !errx.Is(err, extract.ErrOCRUnavailable()) {
		t.Fatalf("expected OCR unavailable, got %v", err)
	}
	if resumesrv.Retryable(err) {
		t.Fatal("a missing OCR engine must not be retried")
	}
	if f.uploadCount(t) != 0 {
		t.Fatal("expected the upload to be deleted")
	}
}

func TestDiscard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stored, err := f.svc.Store(ctx, resume.Upload{Filename: "cv.pdf", Data: []byte("x")})
	if err != nil {
		t.Fatal(err)
	}
	f.svc.Discard(ctx, *stored)
	if f.uploadCount(t) != 0 {
		t.Fatal("expected the upload to be deleted")
	}
}
