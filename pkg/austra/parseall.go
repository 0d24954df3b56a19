package austra

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/bindings"
)

// ParseAll type-checks many independent sources against one shared,
// read-only Bindings concurrently (spec §5: "different parse
// invocations on the same Bindings... may proceed concurrently on
// different threads"). Bindings is immutable after bindings.New, so
// sharing it across goroutines here needs no synchronization of its
// own; each source gets its own Parser.
func ParseAll(ctx context.Context, sources []string, b *bindings.Bindings) ([]*ast.Expr, error) {
	results := make([]*ast.Expr, len(sources))

	g, _ := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			e, err := ParseStatement(src, b)
			if err != nil {
				return err
			}
			results[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
