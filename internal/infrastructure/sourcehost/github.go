// Package sourcehost reads source artifacts for prompt assembly: hosted
// repositories via the GitHub REST API and articles over plain HTTP.
package sourcehost

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
	"github.com/Krosebrook/Flash-n-Frame/internal/ports"
)

// manifestCandidates are probed in order; the first hit wins.
var manifestCandidates = []string{
	"package.json",
	"go.mod",
	"Cargo.toml",
	"pyproject.toml",
	"requirements.txt",
	"pom.xml",
}

type GitHub struct {
	client *github.Client
}

var _ ports.SourceHost = (*GitHub)(nil)

// NewGitHub builds a client. An empty token means unauthenticated access,
// which is subject to much tighter rate limits.
func NewGitHub(token string) *GitHub {
	var httpClient *http.Client
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), src)
	}
	return &GitHub{client: github.NewClient(httpClient)}
}

func (g *GitHub) Tree(ctx context.Context, ref studio.RepoRef) ([]ports.TreeEntry, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tree, _, err := g.client.Git.GetTree(ctx, ref.Owner, ref.Name, branchOrHead(ref), true)
	if err != nil {
		return nil, mapGitHubError(err)
	}

	entries := make([]ports.TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		entries = append(entries, ports.TreeEntry{
			Path: e.GetPath(),
			Type: e.GetType(),
			Size: int64(e.GetSize()),
		})
	}
	return entries, nil
}

func (g *GitHub) FileContent(ctx context.Context, ref studio.RepoRef, path string) (string, error) {
	if ctx == nil {
		return "", errors.New("context is required")
	}

	file, _, _, err := g.client.Repositories.GetContents(ctx, ref.Owner, ref.Name, path, &github.RepositoryContentGetOptions{
		Ref: ref.Branch,
	})
	if err != nil {
		return "", mapGitHubError(err)
	}
	if file == nil {
		return "", fmt.Errorf("%w: %q is a directory", studio.ErrNotFound, path)
	}

	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode %q: %w", path, err)
	}
	return content, nil
}

func (g *GitHub) Manifest(ctx context.Context, ref studio.RepoRef) (ports.ManifestFile, error) {
	for _, path := range manifestCandidates {
		content, err := g.FileContent(ctx, ref, path)
		if err != nil {
			if errors.Is(err, studio.ErrNotFound) {
				continue
			}
			return ports.ManifestFile{}, err
		}
		return ports.ManifestFile{Path: path, Content: content}, nil
	}
	return ports.ManifestFile{}, fmt.Errorf("%w: no dependency manifest in %s", studio.ErrNotFound, ref.String())
}

func branchOrHead(ref studio.RepoRef) string {
	if ref.Branch != "" {
		return ref.Branch
	}
	return "HEAD"
}

func mapGitHubError(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: %s", studio.ErrRateLimited, rateErr.Message)
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: secondary rate limit", studio.ErrRateLimited)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", studio.ErrPermissionDenied, respErr.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", studio.ErrNotFound, respErr.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", studio.ErrRateLimited, respErr.Message)
		}
	}
	return err
}
