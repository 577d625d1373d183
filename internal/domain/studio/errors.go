package studio

import "errors"

// Provider failure taxonomy. Infrastructure adapters map generative
// service and source host failures onto these sentinels so call sites can
// distinguish them instead of receiving silent empty results.
var (
	ErrPermissionDenied = errors.New("permission denied by provider")
	ErrNotFound         = errors.New("resource not found")
	ErrRateLimited      = errors.New("rate limited by provider")
	ErrContentBlocked   = errors.New("content blocked by safety filter")
)

// Input validation sentinels.
var (
	ErrRepoRefRequired     = errors.New("repository ref is required")
	ErrInvalidRepoRef      = errors.New("invalid repository ref")
	ErrArticleURLRequired  = errors.New("article url is required")
	ErrImageRequired       = errors.New("source image is required")
	ErrPromptRequired      = errors.New("description or source image is required")
	ErrInvalidArtifactKind = errors.New("invalid artifact kind")

	ErrTaskTitleRequired = errors.New("task title is required")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)
