// Package preload warms the asset cache ahead of a view mount.
package preload

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/fetch"
	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/resolver"
)

// Batcher dispatches best-effort bulk fetches. Failures are logged and
// discarded independently; a batch as a whole never fails.
type Batcher struct {
	Manager *fetch.Manager

	// Logf receives one line per failed dispatch. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// Warm fetches every request concurrently using the category-appropriate
// operation and returns once all of them have settled, regardless of
// outcome. Successful entries end up in the cache; failed ones stay absent.
func (b Batcher) Warm(ctx context.Context, requests []resolver.Request) {
	if b.Manager == nil || len(requests) == 0 {
		return
	}
	logf := b.Logf
	if logf == nil {
		logf = log.Printf
	}

	var group errgroup.Group
	for _, req := range requests {
		group.Go(func() error {
			if err := b.dispatch(ctx, req); err != nil {
				logf("preload %s: %v", req.CacheKey(), err)
			}
			return nil
		})
	}
	// Every dispatch absorbs its own failure, so Wait cannot return one.
	_ = group.Wait()
}

func (b Batcher) dispatch(ctx context.Context, req resolver.Request) error {
	switch req.Category {
	case resolver.CategoryJSON:
		_, err := b.Manager.JSON(ctx, req.Name, req.Folder)
		return err
	case resolver.CategoryImage:
		_, err := b.Manager.ImageURL(ctx, req.Name, req.Folder)
		return err
	default:
		_, err := b.Manager.AssetURL(req.Name, req.Category, req.Folder)
		return err
	}
}
