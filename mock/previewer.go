package mock

import (
	"context"

	"github.com/fwojciec/pagesense"
)

var _ pagesense.Previewer = (*Previewer)(nil)

// Previewer is a mock implementation of pagesense.Previewer.
type Previewer struct {
	PreviewFn func(ctx context.Context, url string) (string, error)
}

func (p *Previewer) Preview(ctx context.Context, url string) (string, error) {
	return p.PreviewFn(ctx, url)
}
