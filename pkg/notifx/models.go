package notifx

type EmailMessage struct {
	From     string   `json:"from"`
	To       []string `json:"to"`
	CC       []string `json:"cc,omitempty"`
	BCC      []string `json:"bcc,omitempty"`
	ReplyTo  string   `json:"reply_to,omitempty"`
	Subject  string   `json:"subject"`
	TextBody string   `json:"text_body,omitempty"`
	HTMLBody string   `json:"html_body,omitempty"`
}

// EmailTemplate holds the template sources for one kind of email. Any
// field may be empty.
type EmailTemplate struct {
	Subject string
	HTML    string
	Text    string
}

// RenderedEmail is an EmailTemplate after execution.
type RenderedEmail struct {
	Subject string
	HTML    string
	Text    string
}
