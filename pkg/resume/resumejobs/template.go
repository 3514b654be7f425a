package resumejobs

import "github.com/Abraxas-365/resumeforge/pkg/notifx"

const TemplateEnhancementReady = "enhancement_ready"

type readyData struct {
	OriginalFilename string
	OriginalScore    int
	EnhancedScore    int
	Improvement      int
	DownloadURL      string
}

var enhancementReadyTemplate = notifx.EmailTemplate{
	Subject: `Your enhanced resume is ready (ATS score {{.EnhancedScore}}/100)`,
	HTML: `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2 style="color: #00008b;">Your enhanced resume is ready</h2>
  <p>We finished optimizing <strong>{{.OriginalFilename}}</strong>.</p>
  <table cellpadding="6">
    <tr><td>Original ATS score</td><td><strong>{{.OriginalScore}}/100</strong></td></tr>
    <tr><td>Enhanced ATS score</td><td><strong>{{.EnhancedScore}}/100</strong></td></tr>
    <tr><td>Improvement</td><td><strong>+{{.Improvement}}</strong></td></tr>
  </table>
  <p><a href="{{.DownloadURL}}">Download your enhanced resume</a></p>
  <p style="font-size: 12px; color: #777;">The file is kept for a limited time.</p>
</body>
</html>`,
	Text: `Your enhanced resume is ready.

File: {{.OriginalFilename}}
Original ATS score: {{.OriginalScore}}/100
Enhanced ATS score: {{.EnhancedScore}}/100
Improvement: +{{.Improvement}}

Download: {{.DownloadURL}}

The file is kept for a limited time.
`,
}
