package resumeapi

import (
	"strings"

	"github.com/Abraxas-365/resumeforge/pkg/kernel"
	"github.com/Abraxas-365/resumeforge/pkg/resume"
	"github.com/Abraxas-365/resumeforge/pkg/resume/ats"
	"github.com/gofiber/fiber/v2"
)

type resultResponse struct {
	*resume.Result
	Improvement int `json:"improvement"`
}

type scoreRequest struct {
	Text string `json:"text"`
}

type scoreResponse struct {
	Score     int           `json:"score"`
	Breakdown ats.Breakdown `json:"breakdown"`
}

type jobAccepted struct {
	JobID     kernel.JobID `json:"job_id"`
	StatusURL string       `json:"status_url"`
}

func (h *Handlers) createResume(c *fiber.Ctx) error {
	up, err := readUpload(c)
	if err != nil {
		return err
	}
	res, err := h.service.Process(c.UserContext(), up)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resultResponse{Result: res, Improvement: res.Improvement()})
}

func (h *Handlers) scoreText(c *fiber.Ctx) error {
	var req scoreRequest
	if err := c.BodyParser(&req); err != nil {
		return resume.ErrEmptyText().WithCause(err)
	}
	b, err := h.service.ScoreText(req.Text)
	if err != nil {
		return err
	}
	return c.JSON(scoreResponse{Score: b.Total, Breakdown: b})
}

func (h *Handlers) listEnhancements(c *fiber.Ctx) error {
	page, err := h.service.History(c.UserContext(), kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 0),
	})
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *Handlers) getEnhancement(c *fiber.Ctx) error {
	e, err := h.service.Get(c.UserContext(), kernel.EnhancementID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(e)
}

func (h *Handlers) createJob(c *fiber.Ctx) error {
	if h.jobs == nil {
		return resume.ErrAsyncJobsUnavailable()
	}
	up, err := readUpload(c)
	if err != nil {
		return err
	}
	id, err := h.jobs.Enqueue(c.UserContext(), up, strings.TrimSpace(c.FormValue("notify_email")))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(jobAccepted{
		JobID:     id,
		StatusURL: "/api/v1/resumes/jobs/" + id.String(),
	})
}

func (h *Handlers) getJob(c *fiber.Ctx) error {
	if h.jobs == nil {
		return resume.ErrAsyncJobsUnavailable()
	}
	st, err := h.jobs.Status(c.UserContext(), kernel.JobID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(st)
}
