// Package resumejobs runs resume enhancements on the jobx queue and emails
// the result when the caller asked for it.
package resumejobs

import (
	"context"
	"encoding/json"
	"net/mail"
	"strings"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
	"github.com/Abraxas-365/resumeforge/pkg/jobx"
	"github.com/Abraxas-365/resumeforge/pkg/kernel"
	"github.com/Abraxas-365/resumeforge/pkg/logx"
	"github.com/Abraxas-365/resumeforge/pkg/notifx"
	"github.com/Abraxas-365/resumeforge/pkg/resume"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumesrv"
)

// TypeEnhance is the jobx type of an enhancement job.
const TypeEnhance = "resume.enhance"

// Payload is the queued form of an enhancement request.
type Payload struct {
	Upload      resume.StoredUpload `json:"upload"`
	NotifyEmail string              `json:"notify_email,omitempty"`
}

// Processor is the part of the resume service the jobs need.
type Processor interface {
	Store(ctx context.Context, up resume.Upload) (*resume.StoredUpload, error)
	ProcessStored(ctx context.Context, stored resume.StoredUpload) (*resume.Result, error)
	Discard(ctx context.Context, stored resume.StoredUpload)
}

// Queue is the part of jobx the runner needs.
type Queue interface {
	jobx.JobEnqueuer
	jobx.JobStatusReader
}

// Status is the API view of a queued enhancement.
type Status struct {
	ID       kernel.JobID   `json:"id"`
	Status   jobx.JobStatus `json:"status"`
	Attempts int            `json:"attempts"`
	Error    string         `json:"error,omitempty"`
	Result   *resume.Result `json:"result,omitempty"`
}

type Runner struct {
	processor  Processor
	queue      Queue
	mailer     *notifx.Client
	baseURL    string
	queueName  string
	maxRetries int
}

type Option func(*Runner)

// WithMailer enables result emails. baseURL prefixes download links.
func WithMailer(m *notifx.Client, baseURL string) Option {
	return func(r *Runner) {
		r.mailer = m
		r.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithQueue(name string) Option {
	return func(r *Runner) { r.queueName = name }
}

func WithMaxRetries(n int) Option {
	return func(r *Runner) { r.maxRetries = n }
}

func New(processor Processor, queue Queue, opts ...Option) (*Runner, error) {
	r := &Runner{processor: processor, queue: queue, queueName: "resumes"}
	for _, opt := range opts {
		opt(r)
	}
	if r.mailer != nil {
		if err := r.mailer.RegisterTemplate(TemplateEnhancementReady, enhancementReadyTemplate); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register installs the enhancement handler on a worker client.
func (r *Runner) Register(c *jobx.Client) {
	c.Register(TypeEnhance, r.Handle)
}

// Enqueue stores the upload and queues its enhancement.
func (r *Runner) Enqueue(ctx context.Context, up resume.Upload, notifyEmail string) (kernel.JobID, error) {
	notifyEmail = strings.TrimSpace(notifyEmail)
	if notifyEmail != "" {
		if _, err := mail.ParseAddress(notifyEmail); err != nil {
			return "", ErrInvalidEmail().WithDetail("email", notifyEmail)
		}
	}

	stored, err := r.processor.Store(ctx, up)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(Payload{Upload: *stored, NotifyEmail: notifyEmail})
	if err != nil {
		r.processor.Discard(ctx, *stored)
		return "", errx.Wrap(err, "encode enhancement job", errx.TypeInternal)
	}

	id, err := r.queue.Enqueue(ctx, jobx.Job{
		Type:       TypeEnhance,
		Queue:      r.queueName,
		Payload:    payload,
		MaxRetries: r.maxRetries,
	})
	if err != nil {
		r.processor.Discard(ctx, *stored)
		return "", err
	}

	logx.WithContext(ctx).WithFields(logx.Fields{
		"job_id":   id.String(),
		"filename": up.Filename,
	}).Info("Resume enhancement queued")
	return id, nil
}

// Handle processes one enhancement job. Failures that cannot clear on a
// later attempt are marked permanent.
func (r *Runner) Handle(ctx context.Context, job *jobx.JobInfo) ([]byte, error) {
	var p Payload
	if err := job.Decode(&p); err != nil {
		return nil, jobx.Permanent(err)
	}

	res, err := r.processor.ProcessStored(ctx, p.Upload)
	if err != nil {
		if !resumesrv.Retryable(err) {
			return nil, jobx.Permanent(err)
		}
		return nil, err
	}

	if p.NotifyEmail != "" {
		r.notify(ctx, job.ID, p.NotifyEmail, res)
	}

	out, err := json.Marshal(res)
	if err != nil {
		return nil, jobx.Permanent(errx.Wrap(err, "encode enhancement result", errx.TypeInternal))
	}
	return out, nil
}

// notify sends the result email. A send failure is logged and does not fail
// the job, since the enhanced PDF already exists.
func (r *Runner) notify(ctx context.Context, id kernel.JobID, to string, res *resume.Result) {
	log := logx.WithContext(ctx).WithFields(logx.Fields{"job_id": id.String(), "to": to})
	if r.mailer == nil {
		log.Warn("Resume job requested an email but no mailer is configured")
		return
	}

	data := readyData{
		OriginalFilename: res.OriginalFilename,
		OriginalScore:    res.OriginalScore,
		EnhancedScore:    res.EnhancedScore,
		Improvement:      res.Improvement(),
		DownloadURL:      r.baseURL + res.DownloadURL,
	}
	err := r.mailer.SendTemplatedEmail(ctx, TemplateEnhancementReady, data,
		notifx.EmailMessage{To: []string{to}},
		notifx.WithTags(map[string]string{"kind": "enhancement_ready"}),
	)
	if err != nil {
		log.WithError(err).Error("Failed to send enhancement email")
		return
	}
	log.Info("Enhancement email sent")
}

// Status reports a queued enhancement, decoding its result once completed.
func (r *Runner) Status(ctx context.Context, id kernel.JobID) (*Status, error) {
	info, err := r.queue.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if info.Type != TypeEnhance {
		return nil, jobx.NotFound(id.String())
	}

	st := &Status{ID: info.ID, Status: info.Status, Attempts: info.Attempts, Error: info.Error}
	if info.Status == jobx.JobStatusCompleted && len(info.Result) > 0 {
		var res resume.Result
		if err := json.Unmarshal(info.Result, &res); err != nil {
			return nil, errx.Wrap(err, "decode enhancement result", errx.TypeInternal)
		}
		st.Result = &res
	}
	return st, nil
}
