package notifxses_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
	"github.com/Abraxas-365/resumeforge/pkg/notifx"
	"github.com/Abraxas-365/resumeforge/pkg/notifx/notifxses"
	"github.com/aws/aws-sdk-go-v2/service/ses"
)

type fakeSES struct {
	in  *ses.SendEmailInput
	err error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{}, nil
}

func TestSendEmailBuildsInput(t *testing.T) {
	api := &fakeSES{}
	p := notifxses.NewSESProvider(api, "noreply@example.com")

	err := p.SendEmail(context.Background(), notifx.EmailMessage{
		To:       []string{"a@example.com"},
		Subject:  "Ready",
		TextBody: "plain",
		ReplyTo:  "help@example.com",
	}, notifx.WithConfigID("cfg"), notifx.WithTags(map[string]string{"b": "2", "a": "1"}))
	if err != nil {
		t.Fatalf("SendEmail: %v", err)
	}

	in := api.in
	if *in.Source != "noreply@example.com" {
		t.Fatalf("source = %q", *in.Source)
	}
	if in.Message.Body.Html != nil || *in.Message.Body.Text.Data != "plain" {
		t.Fatalf("body = %+v", in.Message.Body)
	}
	if *in.ConfigurationSetName != "cfg" || len(in.ReplyToAddresses) != 1 {
		t.Fatalf("input = %+v", in)
	}
	if len(in.Tags) != 2 || *in.Tags[0].Name != "a" {
		t.Fatalf("tags = %+v", in.Tags)
	}
}

func TestSendEmailWrapsFailure(t *testing.T) {
	p := notifxses.NewSESProvider(&fakeSES{err: errors.New("throttled")}, "noreply@example.com")
	err := p.SendEmail(context.Background(), notifx.EmailMessage{To: []string{"a@example.com"}, Subject: "x"})
	if !hasCode(err, notifxses.ErrSendFailed) {
		t.Fatalf("err = %v", err)
	}
}

func hasCode(err error, code *errx.ErrorCode) bool {
	var e *errx.Error
	return errx.As(err, &e) && e.Code == code.Code
}
