package gemini

import (
	"context"
	"sync"

	"github.com/Krosebrook/Flash-n-Frame/internal/ports"
)

// Lazy defers client construction until the first request, so commands
// that never generate anything do not need an API key configured.
type Lazy struct {
	cfg Config

	once   sync.Once
	client *Client
	err    error
}

var _ ports.Generator = (*Lazy)(nil)

func NewLazy(cfg Config) *Lazy {
	return &Lazy{cfg: cfg}
}

func (l *Lazy) get(ctx context.Context) (*Client, error) {
	l.once.Do(func() {
		l.client, l.err = New(ctx, l.cfg)
	})
	return l.client, l.err
}

func (l *Lazy) GenerateImage(ctx context.Context, req ports.GenerateRequest) (ports.GeneratedImage, error) {
	client, err := l.get(ctx)
	if err != nil {
		return ports.GeneratedImage{}, err
	}
	return client.GenerateImage(ctx, req)
}

func (l *Lazy) GenerateText(ctx context.Context, req ports.GenerateRequest) (string, error) {
	client, err := l.get(ctx)
	if err != nil {
		return "", err
	}
	return client.GenerateText(ctx, req)
}
