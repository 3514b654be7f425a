package resumeapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/url"
	"strings"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
	"github.com/Abraxas-365/resumeforge/pkg/logx"
	"github.com/Abraxas-365/resumeforge/pkg/resume"
	"github.com/Abraxas-365/resumeforge/pkg/resume/extract"
	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// FlashCookie carries one message across a redirect. Its value is encrypted
// by the encryptcookie middleware in production.
const FlashCookie = "resumeforge_flash"

func setFlash(c *fiber.Ctx, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     FlashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// popFlash returns the pending message and clears it.
func popFlash(c *fiber.Ctx) string {
	raw := c.Cookies(FlashCookie)
	if raw == "" {
		return ""
	}
	c.ClearCookie(FlashCookie)
	msg, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return msg
}

// flashMessage picks the text shown to a browser user for err. Internal
// details never reach the page.
func flashMessage(err error) string {
	var e *errx.Error
	if !errx.As(err, &e) {
		return resume.ErrProcessingFailed(nil).Message
	}
	switch {
	case e.Code == extract.CodeFailed.Code, e.Code == extract.CodeOCRUnavailable.Code:
		return resume.ErrInsufficientText().Message
	case strings.HasPrefix(e.Code, "RESUME_"), e.HTTPStatus < 500:
		return e.Message
	}
	return resume.ErrProcessingFailed(nil).Message
}

func render(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return errx.Wrap(err, "render page", errx.TypeInternal)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

type indexPage struct {
	AppName string
	Flash   string
}

type resultPage struct {
	AppName string
	*resume.Result
	Improvement int
}

func (h *Handlers) index(c *fiber.Ctx) error {
	return render(c, "index.html", indexPage{AppName: h.appName, Flash: popFlash(c)})
}

func (h *Handlers) upload(c *fiber.Ctx) error {
	ctx := c.UserContext()

	up, err := readUpload(c)
	if err == nil {
		var res *resume.Result
		if res, err = h.service.Process(ctx, up); err == nil {
			return render(c, "result.html", resultPage{AppName: h.appName, Result: res, Improvement: res.Improvement()})
		}
	}

	logx.WithContext(ctx).WithError(err).WithField("filename", up.Filename).Warn("Upload failed")
	setFlash(c, flashMessage(err))
	return c.Redirect("/", fiber.StatusFound)
}

func (h *Handlers) download(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("filename"))
	if err != nil {
		name = c.Params("filename")
	}

	d, err := h.service.Download(c.UserContext(), name)
	if err != nil {
		logx.WithContext(c.UserContext()).WithError(err).WithField("filename", name).Warn("Download failed")
		setFlash(c, flashMessage(err))
		return c.Redirect("/", fiber.StatusFound)
	}

	c.Attachment(d.Filename)
	return c.Send(d.Data)
}
