package ports

import (
	"context"

	"github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
)

// TreeEntry is one path in a repository file listing.
type TreeEntry struct {
	Path string
	Type string // "blob" or "tree"
	Size int64
}

// ManifestFile is a dependency manifest located in a repository root.
type ManifestFile struct {
	Path    string
	Content string
}

// SourceHost reads repository structure and contents from a hosted
// source control service.
type SourceHost interface {
	Tree(ctx context.Context, ref studio.RepoRef) ([]TreeEntry, error)
	FileContent(ctx context.Context, ref studio.RepoRef, path string) (string, error)
	Manifest(ctx context.Context, ref studio.RepoRef) (ManifestFile, error)
}

// Article is a fetched web article, reduced to what prompt assembly needs.
type Article struct {
	URL   string
	Title string
	Body  string
}

// ArticleFetcher retrieves an article by URL.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (Article, error)
}
