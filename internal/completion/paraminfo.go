package completion

import (
	"strings"

	"github.com/austra-lang/austra/internal/bindings"
	"github.com/austra-lang/austra/internal/types"
)

// lastOpenCall inspects the last unclosed "(" in text and classifies
// it: "Class::method(" (class-method call), "recv.method(" (instance
// method call, recv's type resolved by parsing the text before the
// dot), or a bare "name(" (math pseudo-class).
func lastOpenCall(text string, b *bindings.Bindings) (class, name string, recvType types.Type, hasRecv, ok bool) {
	paren, found := lastUnclosedParen(text)
	if !found {
		return "", "", types.Void, false, false
	}
	ident, start := identBefore(text, paren)
	if ident == "" {
		return "", "", types.Void, false, false
	}

	if strings.HasSuffix(text[:start], "::") {
		classEnd := start - len("::")
		class, _ := identBefore(text, classEnd)
		if class == "" {
			return "", "", types.Void, false, false
		}
		return class, ident, types.Void, false, true
	}

	if start > 0 && text[start-1] == '.' {
		recv, rok := resolveType(text[:start-1], b, -1)
		if !rok {
			return "", "", types.Void, false, false
		}
		return "", ident, recv, true, true
	}

	return "", ident, types.Void, false, true
}
