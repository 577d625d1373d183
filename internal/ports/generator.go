package ports

import "context"

// ImageInput is an inline image handed to the generator.
type ImageInput struct {
	MIMEType string
	Data     []byte
}

// GenerateRequest carries a fully formed prompt plus optional source
// images. Prompt assembly happens in the usecase layer; adapters only
// transport it.
type GenerateRequest struct {
	Prompt string
	Images []ImageInput
}

// GeneratedImage is the binary artifact returned by the generative
// service, with an optional model-produced caption.
type GeneratedImage struct {
	MIMEType string
	Data     []byte
	Caption  string
}

// Generator produces visual or textual artifacts from prompts.
// Failures are mapped to the studio domain sentinels where the provider
// gives enough detail to distinguish them.
type Generator interface {
	GenerateImage(ctx context.Context, req GenerateRequest) (GeneratedImage, error)
	GenerateText(ctx context.Context, req GenerateRequest) (string, error)
}
