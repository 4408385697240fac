package translate

import (
	"context"
	"log"
	"strings"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Descriptions are capped before translation to keep token usage reasonable.
const maxInputLen = 2000

// Translator renders free text into a target language. It is a best-effort
// collaborator: any failure returns the original text unchanged so the
// profile card still displays untranslated.
type Translator struct {
	cli oa.Client
}

func NewTranslator(apiKey string) *Translator {
	client := oa.NewClient(option.WithAPIKey(apiKey))
	return &Translator{cli: client}
}

// Translate returns text in the target language (ISO code, e.g. "es").
// Never returns an error; failures fall back to the input.
func (t *Translator) Translate(ctx context.Context, text, lang string) string {
	text = strings.TrimSpace(text)
	if text == "" || lang == "" {
		return text
	}
	if len(text) > maxInputLen {
		text = text[:maxInputLen]
	}
	resp, err := t.cli.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
		Model: "gpt-4",
		Messages: []oa.ChatCompletionMessageParamUnion{
			oa.SystemMessage("You are a translation engine. Translate the user's text into the language with ISO 639-1 code \"" + lang + "\". Output only the translation, no commentary."),
			oa.UserMessage(text),
		},
	})
	if err != nil {
		log.Printf("translate: falling back to original text: %v", err)
		return text
	}
	if len(resp.Choices) == 0 {
		return text
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return text
	}
	return out
}
