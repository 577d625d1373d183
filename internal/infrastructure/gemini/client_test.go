package gemini

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"

	"github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
)

func TestMapAPIError(t *testing.T) {
	cases := []struct {
		code int
		want error
	}{
		{401, studio.ErrPermissionDenied},
		{403, studio.ErrPermissionDenied},
		{404, studio.ErrNotFound},
		{429, studio.ErrRateLimited},
	}

	for _, tc := range cases {
		err := mapAPIError(genai.APIError{Code: tc.code, Message: "nope"})
		if !errors.Is(err, tc.want) {
			t.Fatalf("code %d mapped to %v, want %v", tc.code, err, tc.want)
		}
	}
}

func TestMapAPIErrorPassesUnknownThrough(t *testing.T) {
	plain := fmt.Errorf("connection reset")
	if got := mapAPIError(plain); got != plain {
		t.Fatalf("unrelated error rewritten: %v", got)
	}

	server := genai.APIError{Code: 500, Message: "internal"}
	got := mapAPIError(server)
	var apiErr genai.APIError
	if !errors.As(got, &apiErr) || apiErr.Code != 500 {
		t.Fatalf("server error rewritten: %v", got)
	}
}

func TestExtractImagePicksInlineDataAndCaption(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "A minimalist architecture poster"},
						{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{0x89, 0x50}}},
					},
				},
			},
		},
	}

	img, err := extractImage(resp)
	if err != nil {
		t.Fatalf("extractImage: %v", err)
	}
	if img.MIMEType != "image/png" || len(img.Data) != 2 {
		t.Fatalf("image = %+v", img)
	}
	if img.Caption != "A minimalist architecture poster" {
		t.Fatalf("caption = %q", img.Caption)
	}
}

func TestExtractImageNoImageIsNotFound(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "only text"}}}},
		},
	}

	if _, err := extractImage(resp); !errors.Is(err, studio.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestExtractImageSafetyBlock(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{FinishReason: genai.FinishReasonSafety},
		},
	}

	if _, err := extractImage(resp); !errors.Is(err, studio.ErrContentBlocked) {
		t.Fatalf("err = %v, want ErrContentBlocked", err)
	}
}
