package resumejobs

import (
	"net/http"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME_JOB")

var CodeInvalidEmail = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Invalid notification email address")

func ErrInvalidEmail() *errx.Error { return ErrRegistry.New(CodeInvalidEmail) }
