package services

import (
	"fmt"

	"github.com/lukenewport-prog/nptgpt/models"
)

// FallbackImagePrompt is used when an image arrives without any text.
const FallbackImagePrompt = "What's in this image?"

// Encoder resolves an uploaded-image reference into inline bytes.
type Encoder interface {
	Encode(ref string) (models.InlineImage, error)
}

// MessageComposer builds the user turn for a chat request, choosing between
// the plain-text and mixed text/image content shapes.
type MessageComposer struct {
	encoder Encoder
}

func NewMessageComposer(encoder Encoder) *MessageComposer {
	return &MessageComposer{encoder: encoder}
}

// ComposeUserTurn produces one user message from the raw request input.
// With an image reference the content is a text part (falling back to
// FallbackImagePrompt) followed by the inline image. Without one, text must
// be non-empty and is carried verbatim.
func (c *MessageComposer) ComposeUserTurn(text, imageRef string) (models.Message, error) {
	if imageRef != "" {
		image, err := c.encoder.Encode(imageRef)
		if err != nil {
			return models.Message{}, err
		}
		prompt := text
		if prompt == "" {
			prompt = FallbackImagePrompt
		}
		return models.UserImageMessage(prompt, image), nil
	}

	if text == "" {
		return models.Message{}, fmt.Errorf("%w: message or imageUrl is required", models.ErrInvalidRequest)
	}
	return models.UserMessage(text), nil
}
