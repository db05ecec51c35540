package fixture

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"golang.org/x/sync/errgroup"

	"github.com/viant/stackgraph/graph"
)

// LoadDir walks dir for *.go fixture files, reads their contents
// concurrently, and then parses each file and feeds it into g one at a
// time, in walk order, so the strictly single-threaded core
// (arena/graph/partial/stitching) is never touched from more than one
// goroutine at once: concurrency lives only in the file-reading stage
// below.
func LoadDir(ctx context.Context, g *graph.StackGraph, dir string) error {
	fs := afs.New()

	var mu sync.Mutex
	var urls []string
	visitor := func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if !strings.HasSuffix(info.Name(), ".go") {
			return true, nil
		}
		mu.Lock()
		urls = append(urls, url.Join(baseURL, parent, info.Name()))
		mu.Unlock()
		return true, nil
	}
	if err := fs.Walk(ctx, dir, storage.OnVisit(visitor)); err != nil {
		return err
	}

	contents := make([][]byte, len(urls))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, fileURL := range urls {
		i, fileURL := i, fileURL
		group.Go(func() error {
			content, err := fs.DownloadWithURL(groupCtx, fileURL)
			if err != nil {
				return err
			}
			contents[i] = content
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for i, fileURL := range urls {
		name := filepath.Base(fileURL)
		if err := BuildFile(g, name, contents[i]); err != nil {
			return err
		}
	}
	return nil
}
