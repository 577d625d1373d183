package studio

import (
	"fmt"
	"strings"
)

// ArtifactKind names the visual artifact a generation produced.
type ArtifactKind string

const (
	KindRepoInfographic    ArtifactKind = "repo-infographic"
	KindArticleInfographic ArtifactKind = "article-infographic"
	KindStyleTransfer      ArtifactKind = "style-transfer"
	KindUICode             ArtifactKind = "ui-code"
)

var allowedKinds = map[ArtifactKind]struct{}{
	KindRepoInfographic:    {},
	KindArticleInfographic: {},
	KindStyleTransfer:      {},
	KindUICode:             {},
}

func ParseArtifactKind(s string) (ArtifactKind, error) {
	kind := ArtifactKind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := allowedKinds[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidArtifactKind, s)
	}
	return kind, nil
}

// Generation is one history entry: the outcome of a single generation
// request, with the produced artifact inline.
type Generation struct {
	ID        string
	Kind      ArtifactKind
	SourceRef string // repo ref, article url, or upload name
	StyleID   string
	MIMEType  string // empty for ui-code
	Payload   []byte // image bytes, or code text for ui-code
	Summary   string
	CreatedAt string
}

// RepoRef identifies a hosted repository, optionally pinned to a branch.
type RepoRef struct {
	Owner  string
	Name   string
	Branch string
}

// ParseRepoRef accepts "owner/name", "owner/name@branch" or a full
// https://github.com/owner/name URL.
func ParseRepoRef(s string) (RepoRef, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return RepoRef{}, ErrRepoRefRequired
	}

	if i := strings.Index(trimmed, "://"); i >= 0 {
		rest := trimmed[i+3:]
		slash := strings.Index(rest, "/")
		if slash < 0 || !strings.Contains(strings.ToLower(rest[:slash]), "github.com") {
			return RepoRef{}, fmt.Errorf("%w: %q", ErrInvalidRepoRef, s)
		}
		trimmed = strings.Trim(rest[slash+1:], "/")
	}

	var branch string
	if at := strings.LastIndex(trimmed, "@"); at >= 0 {
		branch = strings.TrimSpace(trimmed[at+1:])
		trimmed = trimmed[:at]
	}

	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, fmt.Errorf("%w: %q", ErrInvalidRepoRef, s)
	}

	name := strings.TrimSuffix(parts[1], ".git")
	if name == "" {
		return RepoRef{}, fmt.Errorf("%w: %q", ErrInvalidRepoRef, s)
	}

	return RepoRef{Owner: parts[0], Name: name, Branch: branch}, nil
}

func (r RepoRef) String() string {
	if r.Branch != "" {
		return r.Owner + "/" + r.Name + "@" + r.Branch
	}
	return r.Owner + "/" + r.Name
}
