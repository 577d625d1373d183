package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Krosebrook/Flash-n-Frame/internal/accel"
	"github.com/Krosebrook/Flash-n-Frame/internal/bootstrap/logging"
	"github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
	"github.com/Krosebrook/Flash-n-Frame/internal/errs"
	"github.com/Krosebrook/Flash-n-Frame/internal/ports"
)

const (
	// maxTreePaths caps how much of a repository listing goes into a
	// prompt.
	maxTreePaths = 200

	// maxArticleChars caps article text fed into a prompt.
	maxArticleChars = 12000
)

var skippedTreePrefixes = []string{
	"node_modules/", "vendor/", "dist/", "build/", ".git/",
}

type RepoInput struct {
	RepoRef string
	StyleID string
}

type ArticleInput struct {
	URL     string
	StyleID string
}

type StyleTransferInput struct {
	Name     string // display name of the upload
	MIMEType string
	Image    []byte
	StyleID  string
}

type UICodeInput struct {
	Description string
	MIMEType    string
	Image       []byte
}

// repoContext is the distilled repository view used for prompt assembly.
type repoContext struct {
	Ref      studio.RepoRef
	Paths    []string
	Manifest ports.ManifestFile
	Readme   string
}

// GenerateFromRepo turns a hosted repository into an infographic and
// records it in history. Repository reads are cached and coalesced; the
// generation call is retried with backoff.
func (s *Service) GenerateFromRepo(ctx context.Context, in RepoInput) (studio.Generation, error) {
	if ctx == nil {
		return studio.Generation{}, errors.New("context is required")
	}

	ref, err := studio.ParseRepoRef(in.RepoRef)
	if err != nil {
		return studio.Generation{}, err
	}

	style, err := s.styles.Get(in.StyleID)
	if err != nil {
		return studio.Generation{}, err
	}

	logCtx := logging.WithAttrs(ctx,
		slog.String("component", "studio.service"),
		slog.String("repo", ref.String()),
	)

	key := accel.Key("repo-context", ref.Owner, ref.Name, ref.Branch)
	rc, err := accel.Deduplicated(s.flight, key, func() (repoContext, error) {
		return accel.CachedFetch(ctx, s.cache, key, accel.DefaultTTL, func(ctx context.Context) (repoContext, error) {
			return s.gatherRepoContext(ctx, ref)
		})
	})
	if err != nil {
		return studio.Generation{}, errs.Wrap(err, "gather repository context")
	}
	logging.Debug(logCtx, "repository context assembled",
		slog.Int("paths", len(rc.Paths)),
		slog.Bool("manifest", rc.Manifest.Path != ""),
		slog.Bool("readme", rc.Readme != ""),
	)

	img, err := s.generateImage(ctx, ports.GenerateRequest{Prompt: repoPrompt(rc, style)})
	if err != nil {
		return studio.Generation{}, err
	}

	gen := studio.Generation{
		ID:        s.newID(),
		Kind:      studio.KindRepoInfographic,
		SourceRef: ref.String(),
		StyleID:   style.ID,
		MIMEType:  img.MIMEType,
		Payload:   img.Data,
		Summary:   img.Caption,
		CreatedAt: s.timestamp(),
	}
	if err := s.generations.Create(ctx, gen); err != nil {
		return studio.Generation{}, errs.Wrap(err, "record generation")
	}

	logging.Info(logCtx, "repository infographic generated",
		slog.String("generation_id", gen.ID),
		slog.Int("payload_bytes", len(gen.Payload)),
	)
	return gen, nil
}

// GenerateFromArticle turns a web article into an infographic and
// records it in history.
func (s *Service) GenerateFromArticle(ctx context.Context, in ArticleInput) (studio.Generation, error) {
	if ctx == nil {
		return studio.Generation{}, errors.New("context is required")
	}

	url := strings.TrimSpace(in.URL)
	if url == "" {
		return studio.Generation{}, studio.ErrArticleURLRequired
	}

	style, err := s.styles.Get(in.StyleID)
	if err != nil {
		return studio.Generation{}, err
	}

	key := accel.Key("article", url)
	article, err := accel.Deduplicated(s.flight, key, func() (ports.Article, error) {
		return accel.CachedFetch(ctx, s.cache, key, accel.DefaultTTL, func(ctx context.Context) (ports.Article, error) {
			return s.articles.Fetch(ctx, url)
		})
	})
	if err != nil {
		return studio.Generation{}, errs.Wrap(err, "fetch article")
	}

	img, err := s.generateImage(ctx, ports.GenerateRequest{Prompt: articlePrompt(article, style)})
	if err != nil {
		return studio.Generation{}, err
	}

	gen := studio.Generation{
		ID:        s.newID(),
		Kind:      studio.KindArticleInfographic,
		SourceRef: url,
		StyleID:   style.ID,
		MIMEType:  img.MIMEType,
		Payload:   img.Data,
		Summary:   img.Caption,
		CreatedAt: s.timestamp(),
	}
	if err := s.generations.Create(ctx, gen); err != nil {
		return studio.Generation{}, errs.Wrap(err, "record generation")
	}
	return gen, nil
}

// StyleTransfer re-renders an uploaded image in the requested style and
// records the result in history.
func (s *Service) StyleTransfer(ctx context.Context, in StyleTransferInput) (studio.Generation, error) {
	if ctx == nil {
		return studio.Generation{}, errors.New("context is required")
	}
	if len(in.Image) == 0 {
		return studio.Generation{}, studio.ErrImageRequired
	}

	style, err := s.styles.Get(in.StyleID)
	if err != nil {
		return studio.Generation{}, err
	}

	req := ports.GenerateRequest{
		Prompt: styleTransferPrompt(style),
		Images: []ports.ImageInput{{MIMEType: in.MIMEType, Data: in.Image}},
	}
	img, err := s.generateImage(ctx, req)
	if err != nil {
		return studio.Generation{}, err
	}

	sourceRef := strings.TrimSpace(in.Name)
	if sourceRef == "" {
		sourceRef = "upload"
	}

	gen := studio.Generation{
		ID:        s.newID(),
		Kind:      studio.KindStyleTransfer,
		SourceRef: sourceRef,
		StyleID:   style.ID,
		MIMEType:  img.MIMEType,
		Payload:   img.Data,
		Summary:   img.Caption,
		CreatedAt: s.timestamp(),
	}
	if err := s.generations.Create(ctx, gen); err != nil {
		return studio.Generation{}, errs.Wrap(err, "record generation")
	}
	return gen, nil
}

// GenerateUICode produces interface code from a description, a mock
// image, or both, and records it in history.
func (s *Service) GenerateUICode(ctx context.Context, in UICodeInput) (studio.Generation, error) {
	if ctx == nil {
		return studio.Generation{}, errors.New("context is required")
	}

	description := strings.TrimSpace(in.Description)
	if description == "" && len(in.Image) == 0 {
		return studio.Generation{}, studio.ErrPromptRequired
	}

	req := ports.GenerateRequest{Prompt: uiCodePrompt(description)}
	if len(in.Image) > 0 {
		req.Images = []ports.ImageInput{{MIMEType: in.MIMEType, Data: in.Image}}
	}

	code, err := accel.WithBackoff(ctx, func(ctx context.Context) (string, error) {
		return s.generator.GenerateText(ctx, req)
	}, s.maxRetries, s.initialDelay)
	if err != nil {
		return studio.Generation{}, err
	}

	sourceRef := description
	if sourceRef == "" {
		sourceRef = "mock image"
	}

	gen := studio.Generation{
		ID:        s.newID(),
		Kind:      studio.KindUICode,
		SourceRef: sourceRef,
		MIMEType:  "text/plain",
		Payload:   []byte(code),
		CreatedAt: s.timestamp(),
	}
	if err := s.generations.Create(ctx, gen); err != nil {
		return studio.Generation{}, errs.Wrap(err, "record generation")
	}
	return gen, nil
}

func (s *Service) generateImage(ctx context.Context, req ports.GenerateRequest) (ports.GeneratedImage, error) {
	return accel.WithBackoff(ctx, func(ctx context.Context) (ports.GeneratedImage, error) {
		return s.generator.GenerateImage(ctx, req)
	}, s.maxRetries, s.initialDelay)
}

func (s *Service) gatherRepoContext(ctx context.Context, ref studio.RepoRef) (repoContext, error) {
	rc := repoContext{Ref: ref}

	entries, err := s.source.Tree(ctx, ref)
	if err != nil {
		return repoContext{}, err
	}
	rc.Paths = selectTreePaths(entries)

	// Manifest and readme are best-effort: plenty of repositories have
	// neither and still make a fine infographic.
	if manifest, err := s.source.Manifest(ctx, ref); err == nil {
		rc.Manifest = manifest
	} else if !errors.Is(err, studio.ErrNotFound) {
		return repoContext{}, err
	}

	if readme, err := s.source.FileContent(ctx, ref, "README.md"); err == nil {
		rc.Readme = readme
	} else if !errors.Is(err, studio.ErrNotFound) {
		return repoContext{}, err
	}

	return rc, nil
}

func selectTreePaths(entries []ports.TreeEntry) []string {
	paths := make([]string, 0, maxTreePaths)
	for _, e := range entries {
		if e.Type != "blob" {
			continue
		}
		if hasSkippedPrefix(e.Path) {
			continue
		}
		paths = append(paths, e.Path)
		if len(paths) == maxTreePaths {
			break
		}
	}
	return paths
}

func hasSkippedPrefix(path string) bool {
	for _, prefix := range skippedTreePrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func repoPrompt(rc repoContext, style StyleProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create an infographic that explains the repository %s.\n", rc.Ref.String())
	b.WriteString(styleClause(style))

	if rc.Manifest.Path != "" {
		fmt.Fprintf(&b, "\nDependency manifest (%s):\n%s\n", rc.Manifest.Path, clip(rc.Manifest.Content, maxArticleChars))
	}
	if rc.Readme != "" {
		fmt.Fprintf(&b, "\nREADME:\n%s\n", clip(rc.Readme, maxArticleChars))
	}
	if len(rc.Paths) > 0 {
		fmt.Fprintf(&b, "\nFile layout:\n%s\n", strings.Join(rc.Paths, "\n"))
	}
	return b.String()
}

func articlePrompt(article ports.Article, style StyleProfile) string {
	var b strings.Builder
	b.WriteString("Create an infographic summarizing the following article.\n")
	b.WriteString(styleClause(style))
	if article.Title != "" {
		fmt.Fprintf(&b, "\nTitle: %s\n", article.Title)
	}
	fmt.Fprintf(&b, "\n%s\n", clip(article.Body, maxArticleChars))
	return b.String()
}

func styleTransferPrompt(style StyleProfile) string {
	return "Re-render the attached image.\n" + styleClause(style)
}

func uiCodePrompt(description string) string {
	var b strings.Builder
	b.WriteString("Produce a single self-contained HTML file implementing the interface")
	if description != "" {
		b.WriteString(" described below")
	}
	if description == "" {
		b.WriteString(" shown in the attached mock")
	}
	b.WriteString(". Respond with code only.\n")
	if description != "" {
		b.WriteString("\n" + description + "\n")
	}
	return b.String()
}

func styleClause(style StyleProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Visual style: %s.\n", style.Name)
	if len(style.Palette) > 0 {
		fmt.Fprintf(&b, "Palette: %s.\n", strings.Join(style.Palette, ", "))
	}
	if style.Instructions != "" {
		b.WriteString(style.Instructions + "\n")
	}
	return b.String()
}

func clip(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
