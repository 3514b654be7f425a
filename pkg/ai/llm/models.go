package llm

import "strings"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ContentPartType tags one part of a multimodal message.
type ContentPartType string

const (
	ContentPartTypeText  ContentPartType = "text"
	ContentPartTypeImage ContentPartType = "image"
)

// ContentPart is text or an inline image.
type ContentPart struct {
	Type     ContentPartType `json:"type"`
	Text     string          `json:"text,omitempty"`
	Data     []byte          `json:"-"`
	MimeType string          `json:"mime_type,omitempty"`
}

func TextPart(text string) ContentPart {
	return ContentPart{Type: ContentPartTypeText, Text: text}
}

// ImageDataPart carries raw image bytes, e.g. a scanned resume page.
func ImageDataPart(data []byte, mimeType string) ContentPart {
	return ContentPart{Type: ContentPartTypeImage, Data: data, MimeType: mimeType}
}

// Message is one chat turn.
type Message struct {
	Role         string        `json:"role"`
	Content      string        `json:"content,omitempty"`
	MultiContent []ContentPart `json:"multi_content,omitempty"`
}

func (m Message) IsMultimodal() bool {
	return len(m.MultiContent) > 0
}

// TextContent joins the text parts of a multimodal message.
func (m Message) TextContent() string {
	if !m.IsMultimodal() {
		return m.Content
	}
	var parts []string
	for _, p := range m.MultiContent {
		if p.Type == ContentPartTypeText {
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

func NewMultimodalUserMessage(parts ...ContentPart) Message {
	return Message{Role: RoleUser, MultiContent: parts}
}

// Usage is token accounting reported by the provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
