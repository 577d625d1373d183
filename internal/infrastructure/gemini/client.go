// Package gemini adapts Google's generative AI service to the Generator
// port. It maps provider failures onto the studio domain sentinels so
// callers can tell permission, quota, and safety failures apart.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
	"github.com/Krosebrook/Flash-n-Frame/internal/ports"
)

const (
	defaultImageModel = "gemini-2.5-flash-image-preview"
	defaultTextModel  = "gemini-2.5-flash"
)

type Config struct {
	APIKey     string
	ImageModel string
	TextModel  string
}

type Client struct {
	client     *genai.Client
	imageModel string
	textModel  string
}

var _ ports.Generator = (*Client)(nil)

func New(ctx context.Context, cfg Config) (*Client, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("generator api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = defaultImageModel
	}
	textModel := cfg.TextModel
	if textModel == "" {
		textModel = defaultTextModel
	}

	return &Client{
		client:     client,
		imageModel: imageModel,
		textModel:  textModel,
	}, nil
}

func (c *Client) GenerateImage(ctx context.Context, req ports.GenerateRequest) (ports.GeneratedImage, error) {
	contents := buildContents(req)

	resp, err := c.client.Models.GenerateContent(ctx, c.imageModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	})
	if err != nil {
		return ports.GeneratedImage{}, mapAPIError(err)
	}

	return extractImage(resp)
}

func (c *Client) GenerateText(ctx context.Context, req ports.GenerateRequest) (string, error) {
	contents := buildContents(req)

	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, contents, nil)
	if err != nil {
		return "", mapAPIError(err)
	}

	if blocked(resp) {
		return "", studio.ErrContentBlocked
	}

	text := collectText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: model returned no text", studio.ErrNotFound)
	}
	return text, nil
}

func buildContents(req ports.GenerateRequest) []*genai.Content {
	parts := make([]*genai.Part, 0, 1+len(req.Images))
	parts = append(parts, genai.NewPartFromText(req.Prompt))
	for _, img := range req.Images {
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MIMEType))
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

// extractImage pulls the first inline image out of a response, keeping
// any text parts as the caption.
func extractImage(resp *genai.GenerateContentResponse) (ports.GeneratedImage, error) {
	if blocked(resp) {
		return ports.GeneratedImage{}, studio.ErrContentBlocked
	}

	var out ports.GeneratedImage
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil {
				continue
			}
			if part.InlineData != nil && len(part.InlineData.Data) > 0 && out.Data == nil {
				out.MIMEType = part.InlineData.MIMEType
				out.Data = part.InlineData.Data
			}
			if part.Text != "" && out.Caption == "" {
				out.Caption = strings.TrimSpace(part.Text)
			}
		}
	}

	if out.Data == nil {
		return ports.GeneratedImage{}, fmt.Errorf("%w: model returned no image", studio.ErrNotFound)
	}
	return out, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.Text != "" {
				b.WriteString(part.Text)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func blocked(resp *genai.GenerateContentResponse) bool {
	if resp == nil {
		return false
	}
	if fb := resp.PromptFeedback; fb != nil {
		reason := string(fb.BlockReason)
		if reason != "" && reason != "BLOCKED_REASON_UNSPECIFIED" {
			return true
		}
	}
	for _, cand := range resp.Candidates {
		if cand != nil && cand.FinishReason == genai.FinishReasonSafety {
			return true
		}
	}
	return false
}

// mapAPIError translates provider status codes into domain sentinels;
// anything unrecognized passes through unchanged.
func mapAPIError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", studio.ErrPermissionDenied, apiErr.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", studio.ErrNotFound, apiErr.Message)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", studio.ErrRateLimited, apiErr.Message)
	default:
		return err
	}
}
