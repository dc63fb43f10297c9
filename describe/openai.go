package describe

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/sashabaranov/go-openai"

	"github.com/whoknowsla/AsciiVision/codec"
)

// DefaultModel is the vision model used when none is configured.
const DefaultModel = "gpt-4o"

// maxDescriptionTokens caps the length of generated descriptions.
const maxDescriptionTokens = 300

// descriptionPrompt instructs the model to describe ASCII art for a visually
// impaired reader: read out any text, explain objects and scenes, and name
// the characters used to draw them.
const descriptionPrompt = "This is ASCII art converted to an image. Please describe it for " +
	"someone who is visually impaired. Your description should help them understand what " +
	"the ASCII art represents:\n\n" +
	"1. **If it contains text**: Read the letters/words clearly and spell them out\n" +
	"2. **If it's an object/scene**: Describe what it shows in detail\n" +
	"3. **Character details**: Explain what specific ASCII characters are used " +
	"(like | for lines, o for eyes, ^ for ears, etc.)\n" +
	"4. **Layout and structure**: Describe how the characters are arranged\n\n" +
	"Focus on being descriptive and helpful for someone who cannot see the image. " +
	"Be specific about the visual elements and what they represent."

// OpenAIProvider implements Provider using the OpenAI vision chat API.
//
// Thread safety: the underlying client handles connection pooling, so a
// single provider is safe for concurrent Describe calls.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// OpenAIConfig holds settings for the OpenAI description provider.
type OpenAIConfig struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// Model is the vision model to use (default: gpt-4o).
	Model string

	// BaseURL overrides the API endpoint. Empty selects the OpenAI default.
	BaseURL string
}

// NewOpenAIProvider creates a description provider backed by the OpenAI API.
// Returns an error if the API key is empty.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("describe: OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Describe encodes the image as a PNG data URL and asks the vision model for
// an accessibility description.
func (p *OpenAIProvider) Describe(ctx context.Context, img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("describe: image is nil")
	}

	dataURL, err := imageDataURL(img)
	if err != nil {
		return "", err
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.model,
		MaxTokens: maxDescriptionTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: descriptionPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURL,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("describe: description request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("describe: API returned no choices")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("describe: API returned an empty description")
	}
	return content, nil
}

// Model returns the configured vision model name.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// imageDataURL encodes an image as a base64 PNG data URL for inline
// transmission in a vision request.
func imageDataURL(img image.Image) (string, error) {
	data, err := codec.EncodePNG(img)
	if err != nil {
		return "", fmt.Errorf("describe: encode image: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Ensure OpenAIProvider implements Provider at compile time.
var _ Provider = (*OpenAIProvider)(nil)
