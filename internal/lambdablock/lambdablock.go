// Package lambdablock implements C4: the stack of lambda parameter
// frames consulted while parsing and typing a lambda body. A frame is
// pushed on entering a lambda argument, looked up during body parsing,
// and popped (closing the lambda) once the body has been typed.
package lambdablock

import (
	"fmt"

	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/types"
	"github.com/austra-lang/austra/pkg/token"
)

// Binding is one named parameter live inside a lambda frame.
type Binding struct {
	Name  string
	Type  types.Type
	Index int // arena index in the owning ast.Arena
}

type frame struct {
	bindings []Binding
}

// Stack is the lambda block: a stack of frames, innermost last.
// Shadowing is resolved top-down, so a nested lambda's parameter names
// win over an enclosing one's.
type Stack struct {
	frames []frame
}

// New returns an empty lambda block.
func New() *Stack { return &Stack{} }

// Push opens a new frame for bindings already allocated in the arena.
func (s *Stack) Push(bindings ...Binding) {
	s.frames = append(s.frames, frame{bindings: bindings})
}

// Lookup searches frames innermost-first. Lambda parameter names are
// ordinary identifiers, so both sides are case-folded the same way
// every other symbol-table key is.
func (s *Stack) Lookup(name string) (Binding, bool) {
	folded := token.Normalize(name)
	for i := len(s.frames) - 1; i >= 0; i-- {
		for _, b := range s.frames[i].bindings {
			if token.Normalize(b.Name) == folded {
				return b, true
			}
		}
	}
	return Binding{}, false
}

// GatherForCompletion lists every parameter name currently live,
// innermost frame first, for the completion façade's member listing
// inside an open lambda body.
func (s *Stack) GatherForCompletion() []Binding {
	var out []Binding
	for i := len(s.frames) - 1; i >= 0; i-- {
		out = append(out, s.frames[i].bindings...)
	}
	return out
}

// Depth reports how many frames are currently open.
func (s *Stack) Depth() int { return len(s.frames) }

// Close pops the top frame and builds a typed lambda node from body.
// If body's type does not match returnType, the single permitted
// implicit conversion is applied (int->double, int|double->complex);
// if allowUpgrade is set, a double body is accepted against a narrower
// numeric formal return type and the lambda is marked Upgraded.
// Any other mismatch is reported as an error.
func (s *Stack) Close(body *ast.Expr, returnType types.Type, allowUpgrade bool) (*ast.Expr, error) {
	if len(s.frames) == 0 {
		return nil, fmt.Errorf("lambdablock: Close called with no open frame")
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]

	indices := make([]int, len(top.bindings))
	for i, b := range top.bindings {
		indices[i] = b.Index
	}

	if body.Type == returnType {
		return ast.Lambda(body.Pos, returnType, indices, body, false), nil
	}

	if types.ConvertibleTo(body.Type, returnType) {
		converted := ast.Convert(body.Pos, returnType, body)
		return ast.Lambda(body.Pos, returnType, indices, converted, false), nil
	}

	// allowUpgrade covers the inverse direction: a double body against a
	// narrower numeric formal (e.g. int). The lambda's actual type
	// becomes double and the caller is told it was upgraded, rather than
	// the body being narrowed to the formal type.
	if allowUpgrade && body.Type == types.Double && returnType.IsNumericScalar() {
		return ast.Lambda(body.Pos, types.Double, indices, body, true), nil
	}

	return nil, fmt.Errorf("lambdablock: expected return type is %s", returnType)
}
