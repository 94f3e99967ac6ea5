package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/rdfstore/internal/crawler"
	"github.com/roach88/rdfstore/internal/graph"
)

// loadInto fills g from path. N-Triples files (.nt) are decoded directly; any
// other file is loaded as an annotated document and crawled.
func loadInto(g *graph.Graph, path string) error {
	if filepath.Ext(path) == ".nt" {
		f, err := os.Open(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open "+path, err)
		}
		defer f.Close()
		if _, err := g.Load(f); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load %s", path), err)
		}
		return nil
	}

	doc, err := crawler.LoadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load %s", path), err)
	}
	if _, err := crawler.Crawl(doc, g.Registry(), g); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to crawl %s", path), err)
	}
	return nil
}
