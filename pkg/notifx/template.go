package notifx

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	"sync"
	texttemplate "text/template"
)

type compiledTemplate struct {
	subject *texttemplate.Template
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

// TemplateRegistry stores parsed email templates by name. HTML bodies are
// escaped with html/template; subjects and text bodies are not.
type TemplateRegistry struct {
	mu        sync.RWMutex
	templates map[string]compiledTemplate
}

func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{templates: make(map[string]compiledTemplate)}
}

func (r *TemplateRegistry) Register(name string, tmpl EmailTemplate) error {
	var (
		ct  compiledTemplate
		err error
	)
	if tmpl.Subject != "" {
		if ct.subject, err = texttemplate.New(name + ".subject").Parse(tmpl.Subject); err != nil {
			return notifxErrors.NewWithCause(ErrTemplateParse, err).WithDetail("template", name).WithDetail("part", "subject")
		}
	}
	if tmpl.HTML != "" {
		if ct.html, err = htmltemplate.New(name + ".html").Parse(tmpl.HTML); err != nil {
			return notifxErrors.NewWithCause(ErrTemplateParse, err).WithDetail("template", name).WithDetail("part", "html")
		}
	}
	if tmpl.Text != "" {
		if ct.text, err = texttemplate.New(name + ".text").Parse(tmpl.Text); err != nil {
			return notifxErrors.NewWithCause(ErrTemplateParse, err).WithDetail("template", name).WithDetail("part", "text")
		}
	}

	r.mu.Lock()
	r.templates[name] = ct
	r.mu.Unlock()
	return nil
}

func (r *TemplateRegistry) Render(name string, data any) (RenderedEmail, error) {
	r.mu.RLock()
	ct, ok := r.templates[name]
	r.mu.RUnlock()

	if !ok {
		return RenderedEmail{}, notifxErrors.New(ErrTemplateNotFound).WithDetail("template", name)
	}

	var out RenderedEmail
	var buf bytes.Buffer
	if ct.subject != nil {
		if err := ct.subject.Execute(&buf, data); err != nil {
			return RenderedEmail{}, notifxErrors.NewWithCause(ErrTemplateRender, err).WithDetail("template", name)
		}
		out.Subject = strings.TrimSpace(buf.String())
		buf.Reset()
	}
	if ct.html != nil {
		if err := ct.html.Execute(&buf, data); err != nil {
			return RenderedEmail{}, notifxErrors.NewWithCause(ErrTemplateRender, err).WithDetail("template", name)
		}
		out.HTML = buf.String()
		buf.Reset()
	}
	if ct.text != nil {
		if err := ct.text.Execute(&buf, data); err != nil {
			return RenderedEmail{}, notifxErrors.NewWithCause(ErrTemplateRender, err).WithDetail("template", name)
		}
		out.Text = buf.String()
	}
	return out, nil
}
