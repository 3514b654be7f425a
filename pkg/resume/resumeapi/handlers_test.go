package resumeapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
	"github.com/Abraxas-365/resumeforge/pkg/jobx"
	"github.com/Abraxas-365/resumeforge/pkg/kernel"
	"github.com/Abraxas-365/resumeforge/pkg/ratelimit/ratelimitmemory"
	"github.com/Abraxas-365/resumeforge/pkg/resume"
	"github.com/Abraxas-365/resumeforge/pkg/resume/ats"
	"github.com/Abraxas-365/resumeforge/pkg/resume/extract"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumeapi"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumejobs"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumesrv"
	"github.com/gofiber/fiber/v2"
)

type fakeService struct {
	result  *resume.Result
	err     error
	upload  resume.Upload
	records []resume.Enhancement
	files   map[string][]byte
}

func (f *fakeService) Process(ctx context.Context, up resume.Upload) (*resume.Result, error) {
	f.upload = up
	if err := resumesrv.Validate(up); err != nil {
		return nil, err
	}
	return f.result, f.err
}

func (f *fakeService) Download(ctx context.Context, name string) (*resumesrv.Download, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, resume.ErrFileNotFound()
	}
	return &resumesrv.Download{Filename: name, Data: data}, nil
}

func (f *fakeService) ScoreText(text string) (ats.Breakdown, error) {
	if strings.TrimSpace(text) == "" {
		return ats.Breakdown{}, resume.ErrEmptyText()
	}
	return ats.Analyze(text), nil
}

func (f *fakeService) History(ctx context.Context, opts kernel.PaginationOptions) (kernel.Paginated[resume.Enhancement], error) {
	opts = opts.Normalize(20, 100)
	return kernel.NewPaginated(f.records, opts.Page, opts.PageSize, len(f.records)), nil
}

func (f *fakeService) Get(ctx context.Context, id kernel.EnhancementID) (*resume.Enhancement, error) {
	for _, r := range f.records {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, resume.ErrEnhancementNotFound()
}

type fakeJobs struct {
	email string
}

func (f *fakeJobs) Enqueue(ctx context.Context, up resume.Upload, notifyEmail string) (kernel.JobID, error) {
	if err := resumesrv.Validate(up); err != nil {
		return "", err
	}
	f.email = notifyEmail
	return "job-7", nil
}

func (f *fakeJobs) Status(ctx context.Context, id kernel.JobID) (*resumejobs.Status, error) {
	if id != "job-7" {
		return nil, jobx.NotFound(id.String())
	}
	return &resumejobs.Status{ID: id, Status: jobx.JobStatusPending}, nil
}

func sampleResult() *resume.Result {
	return &resume.Result{
		Enhancement: resume.Enhancement{
			ID:               "enh-1",
			OriginalFilename: "cv.pdf",
			EnhancedFilename: "enhanced_cv_0a1b2c3d.pdf",
			OriginalScore:    35,
			EnhancedScore:    70,
			Source:           resume.SourceAI,
		},
		OriginalPreview: "Jane Doe <original>",
		EnhancedPreview: "JANE DOE",
		DownloadURL:     "/download/enhanced_cv_0a1b2c3d.pdf",
	}
}

func newApp(svc resumeapi.Service, jobs resumeapi.Jobs, limit int) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: resumeapi.ErrorHandler(false)})
	cfg := resumeapi.Config{
		AppName: "Resume Forge",
		Limiter: ratelimitmemory.New(limit, 5*time.Minute),
		Window:  5 * time.Minute,
	}
	if jobs != nil {
		cfg.Jobs = jobs
	}
	resumeapi.NewHandlers(svc, cfg).RegisterRoutes(app)
	app.Use(resumeapi.NotFound)
	return app
}

func multipartRequest(t *testing.T, target, filename string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte("%PDF-1.4 test"))
	}
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

func flashCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == resumeapi.FlashCookie {
			return c
		}
	}
	return nil
}

func TestUploadRendersResult(t *testing.T) {
	svc := &fakeService{result: sampleResult()}
	app := newApp(svc, nil, 5)

	req := multipartRequest(t, "/upload", "cv.pdf", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	resp, body := do(t, app, req)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body = %s", resp.StatusCode, body)
	}
	for _, want := range []string{"35%", "70%", "+35", "/download/enhanced_cv_0a1b2c3d.pdf", "Jane Doe &lt;original&gt;"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if svc.upload.ClientIP != "203.0.113.9" || string(svc.upload.Data) != "%PDF-1.4 test" {
		t.Fatalf("upload = %+v", svc.upload)
	}
}

func TestUploadErrorFlashesAndRedirects(t *testing.T) {
	app := newApp(&fakeService{result: sampleResult()}, nil, 5)

	resp, _ := do(t, app, multipartRequest(t, "/upload", "notes.txt", nil))
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
		t.Fatalf("status = %d location = %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	cookie := flashCookie(resp)
	if cookie == nil {
		t.Fatal("expected a flash cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	_, body := do(t, app, req)
	if !strings.Contains(body, "Invalid file type. Please upload PDF, PNG, JPG, or JPEG files.") {
		t.Fatalf("index did not show flash: %s", body)
	}
}

func TestUploadUnreadableImageFlashesExtractionMessage(t *testing.T) {
	app := newApp(&fakeService{err: extract.ErrOCRUnavailable()}, nil, 5)

	resp, _ := do(t, app, multipartRequest(t, "/upload", "scan.png", nil))
	cookie := flashCookie(resp)
	if resp.StatusCode != http.StatusFound || cookie == nil {
		t.Fatalf("status = %d cookie = %+v", resp.StatusCode, cookie)
	}
	if !strings.Contains(cookie.Value, "Could+not+extract+sufficient+text") {
		t.Fatalf("flash = %q", cookie.Value)
	}
}

func TestUploadWithoutFile(t *testing.T) {
	app := newApp(&fakeService{}, nil, 5)

	resp, _ := do(t, app, multipartRequest(t, "/upload", "", map[string]string{"x": "y"}))
	cookie := flashCookie(resp)
	if resp.StatusCode != http.StatusFound || cookie == nil || !strings.Contains(cookie.Value, "No+file+selected") {
		t.Fatalf("status = %d cookie = %+v", resp.StatusCode, cookie)
	}
}

func TestUploadRateLimited(t *testing.T) {
	app := newApp(&fakeService{result: sampleResult()}, nil, 1)

	first, _ := do(t, app, multipartRequest(t, "/upload", "cv.pdf", nil))
	if first.StatusCode != http.StatusOK {
		t.Fatalf("first status = %d", first.StatusCode)
	}

	second, _ := do(t, app, multipartRequest(t, "/upload", "cv.pdf", nil))
	cookie := flashCookie(second)
	if second.StatusCode != http.StatusFound || cookie == nil {
		t.Fatalf("second status = %d", second.StatusCode)
	}
	if !strings.Contains(cookie.Value, "5+minutes") {
		t.Fatalf("flash = %q", cookie.Value)
	}

	api, body := do(t, app, multipartRequest(t, "/api/v1/resumes", "cv.pdf", nil))
	if api.StatusCode != http.StatusTooManyRequests || api.Header.Get("Retry-After") == "" {
		t.Fatalf("api status = %d body = %s", api.StatusCode, body)
	}
}

func TestDownload(t *testing.T) {
	svc := &fakeService{files: map[string][]byte{"enhanced_cv_0a1b2c3d.pdf": []byte("%PDF-")}}
	app := newApp(svc, nil, 5)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/download/enhanced_cv_0a1b2c3d.pdf", nil))
	if resp.StatusCode != http.StatusOK || body != "%PDF-" {
		t.Fatalf("status = %d body = %q", resp.StatusCode, body)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("content disposition = %q", cd)
	}

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/download/missing.pdf", nil))
	cookie := flashCookie(resp)
	if resp.StatusCode != http.StatusFound || cookie == nil || !strings.Contains(cookie.Value, "expired") {
		t.Fatalf("missing: status = %d cookie = %+v", resp.StatusCode, cookie)
	}
}

func TestCreateResumeJSON(t *testing.T) {
	app := newApp(&fakeService{result: sampleResult()}, nil, 5)

	resp, body := do(t, app, multipartRequest(t, "/api/v1/resumes", "cv.pdf", nil))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d body = %s", resp.StatusCode, body)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatal(err)
	}
	if got["improvement"] != float64(35) || got["enhanced_filename"] != "enhanced_cv_0a1b2c3d.pdf" {
		t.Fatalf("body = %v", got)
	}

	resp, body = do(t, app, multipartRequest(t, "/api/v1/resumes", "cv.exe", nil))
	var e errx.Response
	json.Unmarshal([]byte(body), &e)
	if resp.StatusCode != http.StatusBadRequest || e.Code != resume.CodeInvalidFileType.Code {
		t.Fatalf("status = %d body = %s", resp.StatusCode, body)
	}
}

func TestScoreText(t *testing.T) {
	app := newApp(&fakeService{}, nil, 5)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ats/score", strings.NewReader(`{"text":"jane@example.com\nSKILLS\nGo, SQL"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body := do(t, app, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body = %s", resp.StatusCode, body)
	}
	var got struct {
		Score     int           `json:"score"`
		Breakdown ats.Breakdown `json:"breakdown"`
	}
	json.Unmarshal([]byte(body), &got)
	if got.Score != got.Breakdown.Total || got.Score == 0 {
		t.Fatalf("got = %+v", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/ats/score", strings.NewReader(`{"text":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	if resp, _ := do(t, app, req); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty text status = %d", resp.StatusCode)
	}
}

func TestEnhancementHistory(t *testing.T) {
	svc := &fakeService{records: []resume.Enhancement{sampleResult().Enhancement}}
	app := newApp(svc, nil, 5)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/enhancements?page=1&page_size=10", nil))
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"enh-1"`) {
		t.Fatalf("status = %d body = %s", resp.StatusCode, body)
	}

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/enhancements/enh-1", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/enhancements/nope", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing status = %d", resp.StatusCode)
	}
}

func TestJobs(t *testing.T) {
	app := newApp(&fakeService{}, nil, 5)
	resp, _ := do(t, app, multipartRequest(t, "/api/v1/resumes/jobs", "cv.pdf", nil))
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("without jobs status = %d", resp.StatusCode)
	}

	jobs := &fakeJobs{}
	app = newApp(&fakeService{}, jobs, 5)
	resp, body := do(t, app, multipartRequest(t, "/api/v1/resumes/jobs", "cv.pdf", map[string]string{"notify_email": "jane@example.com"}))
	if resp.StatusCode != http.StatusAccepted || !strings.Contains(body, `"job_id":"job-7"`) {
		t.Fatalf("status = %d body = %s", resp.StatusCode, body)
	}
	if jobs.email != "jane@example.com" {
		t.Fatalf("email = %q", jobs.email)
	}

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/jobs/job-7", nil))
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"pending"`) {
		t.Fatalf("status = %d body = %s", resp.StatusCode, body)
	}
	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/jobs/job-8", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown job status = %d", resp.StatusCode)
	}
}

func TestNotFoundRoute(t *testing.T) {
	app := newApp(&fakeService{}, nil, 5)
	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(body, "Route not found") {
		t.Fatalf("status = %d body = %s", resp.StatusCode, body)
	}
}
