package feedback

import "context"

// ClickRecorder bumps a page's click counter by exact URL. The boolean
// reports whether the page existed.
type ClickRecorder interface {
	RecordClick(ctx context.Context, url string) (bool, error)
}
