package datasource

import (
	"sync"

	"github.com/google/uuid"

	"github.com/austra-lang/austra/internal/ast"
)

// Pool is a freelist of argument-expression slices, grounded on spec
// §5's "Shared resources": "Expression lists used to accumulate
// arguments... are pooled by the host data source (rent/return); the
// parser must clear them before release." Every Rent is stamped with a
// uuid token kept only for ActiveRentals bookkeeping (the rent(size)/
// return(list) signature spec §6.2 gives never threads the token back
// through the caller).
type Pool struct {
	mu      sync.Mutex
	free    [][]*ast.Expr
	pending map[string]struct{}
}

// NewPool returns an empty expression-list pool.
func NewPool() *Pool {
	return &Pool{pending: make(map[string]struct{})}
}

// Rent returns a slice with at least the requested capacity, reusing a
// freed one when available.
func (p *Pool) Rent(size int) []*ast.Expr {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending[uuid.New().String()] = struct{}{}

	for i, candidate := range p.free {
		if cap(candidate) >= size {
			p.free = append(p.free[:i], p.free[i+1:]...)
			return candidate[:0]
		}
	}
	return make([]*ast.Expr, 0, size)
}

// Return releases a rented slice back to the pool. The caller must
// have cleared it (len 0) first; Return truncates defensively.
func (p *Pool) Return(list []*ast.Expr) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for token := range p.pending {
		delete(p.pending, token)
		break
	}
	p.free = append(p.free, list[:0])
}

// ActiveRentals reports how many rented slices have not yet been
// returned.
func (p *Pool) ActiveRentals() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
