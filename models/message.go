package models

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	PartTypeText  = "text"
	PartTypeImage = "image"
)

// DetailHigh asks the vision model for a full-resolution pass over the image.
const DetailHigh = "high"

// InlineImage is an image embedded directly into a message.
type InlineImage struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64-encoded bytes
}

type ContentPart struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Image  *InlineImage `json:"image,omitempty"`
	Detail string       `json:"detail,omitempty"`
}

// Message is one turn of a conversation. Content and Parts are mutually
// exclusive: system and assistant messages always use Content, user messages
// use Parts when an image is attached. Build messages through the
// constructors below so the shape stays valid.
type Message struct {
	Role    string        `json:"role"`
	Content string        `json:"content,omitempty"`
	Parts   []ContentPart `json:"parts,omitempty"`
}

func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// UserImageMessage builds a mixed-content user turn: a text part followed by
// one inline image part carrying the high-detail hint.
func UserImageMessage(text string, image InlineImage) Message {
	return Message{
		Role: RoleUser,
		Parts: []ContentPart{
			{Type: PartTypeText, Text: text},
			{Type: PartTypeImage, Image: &image, Detail: DetailHigh},
		},
	}
}

// Text returns the textual content of the message. For mixed-content
// messages this is the first text part.
func (m Message) Text() string {
	if len(m.Parts) == 0 {
		return m.Content
	}
	for _, p := range m.Parts {
		if p.Type == PartTypeText {
			return p.Text
		}
	}
	return ""
}
