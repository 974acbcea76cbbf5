// Package feedback records result clicks so popular pages rank higher in
// lexical searches.
package feedback

import (
	"context"
	"fmt"

	"github.com/astroseek/astroseek/internal/domain"
)

// Outcome reports what a click submission did.
type Outcome string

const (
	// Updated means the counter was bumped.
	Updated Outcome = "updated"
	// NotFound means no indexed page matched the URL. Not an error: clicks
	// can race a reindex that dropped the page.
	NotFound Outcome = "not_found"
)

// Service handles click-feedback submissions.
type Service struct {
	clicks ClickRecorder
}

// New creates a feedback service.
func New(clicks ClickRecorder) *Service {
	return &Service{clicks: clicks}
}

// RecordClick registers one click on the page with the given URL.
func (s *Service) RecordClick(ctx context.Context, url string) (Outcome, error) {
	if url == "" {
		return "", fmt.Errorf("%w: url is required", domain.ErrInvalidQuery)
	}

	updated, err := s.clicks.RecordClick(ctx, url)
	if err != nil {
		return "", fmt.Errorf("record click: %w", err)
	}
	if !updated {
		return NotFound, nil
	}
	return Updated, nil
}
