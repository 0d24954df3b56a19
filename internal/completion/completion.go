// Package completion implements C6: the code-completion façade
// consumed by a host editor. It never mutates a Bindings or a Parser's
// public contract — it drives internal/parser with an abort position
// set at (or past) the caret and inspects the resulting, possibly
// partial, expression tree (§4.6, §4.7: "in completion mode, all
// errors are caught and yield empty results").
package completion

import (
	"strings"

	"github.com/austra-lang/austra/internal/bindings"
	"github.com/austra-lang/austra/internal/parser"
	"github.com/austra-lang/austra/internal/types"
)

// Member is one completion-list entry, bindings.Member plus a
// plain-text-rendered doc string for editor hover/completion payloads.
type Member struct {
	Name       string
	Kind       string
	ReturnType types.Type
	Doc        string
}

func renderMembers(in []bindings.Member) []Member {
	out := make([]Member, len(in))
	for i, m := range in {
		out[i] = Member{Name: m.Name, Kind: m.Kind, ReturnType: m.ReturnType, Doc: renderDoc(m.Doc)}
	}
	return out
}

// Members implements members(source, text) -> (members, type?) (§4.6):
// it isolates the terminal object path ending at the caret, parses its
// receiver (retrying with a detected `let ... in` header prepended on
// failure), and lists the members reachable on its result type,
// filtered by whatever partial member name follows the last dot. An
// empty path lists the global roots; a caret inside a string literal
// lists nothing.
func Members(source, text string, b *bindings.Bindings) (members []Member, resultType types.Type, ok bool) {
	if insideStringLiteral(text) {
		return nil, types.Void, false
	}

	frag := trimIncompleteAssignment(text)
	path := terminalObjectPath(frag)
	if path == "" {
		return renderMembers(b.GlobalRoots()), types.Void, true
	}

	recv, partial, hasDot := splitReceiver(path)
	if !hasDot {
		// A bare identifier prefix: the only values in scope are lambda
		// parameters from an open lambda body and global roots.
		if params := filterByPrefix(openLambdaParams(source, b), partial); len(params) > 0 {
			return params, types.Void, true
		}
		return filterByPrefix(renderMembers(b.GlobalRoots()), partial), types.Void, true
	}

	t, found := resolveType(recv, b, -1)
	if !found {
		if header, ok := detectLetHeader(source); ok {
			t, found = resolveType(header+recv, b, -1)
		}
	}
	if !found {
		return nil, types.Void, false
	}

	all := renderMembers(b.Members(t))
	if partial == "" {
		return all, t, true
	}
	filtered := filterByPrefix(all, partial)
	if len(filtered) == 0 {
		// Nothing matches the prefix: offer the closest member by name
		// similarity instead of an empty list.
		if best := SuggestMember(partial, all); best != "" {
			return filterByName(all, best), t, true
		}
		return nil, t, true
	}
	return filtered, t, true
}

// splitReceiver splits a terminal object path at its last '.' into the
// receiver expression and the partially typed member after it. A path
// ending in a closed call or indexer is a complete receiver, and a dot
// followed by a digit belongs to a numeric literal, not member access.
func splitReceiver(path string) (recv, partial string, hasDot bool) {
	if n := len(path); n > 0 && (path[n-1] == ')' || path[n-1] == ']') {
		return path, "", true
	}
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return "", path, false
	}
	partial = path[idx+1:]
	if partial != "" && partial[0] >= '0' && partial[0] <= '9' {
		return path, "", true
	}
	return path[:idx], partial, true
}

func filterByPrefix(members []Member, prefix string) []Member {
	if prefix == "" {
		return members
	}
	lower := strings.ToLower(prefix)
	var out []Member
	for _, m := range members {
		if strings.HasPrefix(strings.ToLower(m.Name), lower) {
			out = append(out, m)
		}
	}
	return out
}

func filterByName(members []Member, name string) []Member {
	for _, m := range members {
		if m.Name == name {
			return []Member{m}
		}
	}
	return nil
}

// insideStringLiteral reports whether the end of text falls inside an
// unterminated string literal, counting quotes with the doubled-quote
// escape collapsed (§9: completion inside a string returns nothing).
func insideStringLiteral(text string) bool {
	inside := false
	for i := 0; i < len(text); i++ {
		if text[i] == '"' {
			inside = !inside
		}
	}
	return inside
}

// openLambdaParams re-runs the full parse with the abort position at
// end-of-source and lists any lambda parameters still in scope there
// (§4.6: "completion of live lambda parameters by re-running the parse
// with the abort position set to end-of-text and inspecting the lambda
// block").
func openLambdaParams(source string, b *bindings.Bindings) []Member {
	if source == "" {
		return nil
	}
	p := parser.New(source, b, parser.WithAbortPosition(len(source)))
	p.ParseProgram()
	bindingsInScope := p.OpenLambdaParams()
	out := make([]Member, len(bindingsInScope))
	for i, lb := range bindingsInScope {
		out[i] = Member{Name: lb.Name, Kind: "parameter", ReturnType: lb.Type}
	}
	return out
}

// ClassMembers implements classMembers(text) -> members (§4.6): it
// inspects the last "id::" in text and lists that pseudo-class's static
// methods/constructors.
func ClassMembers(text string, b *bindings.Bindings) []Member {
	if insideStringLiteral(text) {
		return nil
	}
	class, ok := lastClassPrefix(text)
	if !ok {
		return nil
	}
	return renderMembers(b.ClassMembers(class))
}

// ParamInfo implements paramInfo(text) -> signature strings (§4.6): it
// inspects the last unclosed "id(" or "Class::id(" in text and renders
// every surviving overload's signature.
func ParamInfo(text string, b *bindings.Bindings) []string {
	if insideStringLiteral(text) {
		return nil
	}
	class, name, recvType, hasRecv, ok := lastOpenCall(text, b)
	if !ok {
		return nil
	}

	var list bindings.MethodList
	var found bool
	switch {
	case class != "":
		list, found = b.ClassMethod(class, name)
	case hasRecv:
		list, found = b.Overloads(recvType, name)
	default:
		list, found = b.ClassMethod("math", name)
	}
	if !found {
		return nil
	}

	sigs := make([]string, len(list.Overloads))
	for i, m := range list.Overloads {
		sigs[i] = signature(m)
	}
	return sigs
}

func signature(m bindings.MethodData) string {
	s := m.Name + "("
	first := true
	for _, p := range m.Params {
		if p.Sentinel != bindings.NoSentinel {
			continue
		}
		if !first {
			s += ", "
		}
		first = false
		s += p.Type.String()
	}
	s += ") " + m.ReturnType.String()
	return s
}

// resolveType parses exprText against b and returns the type of the
// resulting expression. abortAt < 0 means "parse to completion" (no
// abort position).
func resolveType(exprText string, b *bindings.Bindings, abortAt int) (types.Type, bool) {
	var opts []parser.Option
	if abortAt >= 0 {
		opts = append(opts, parser.WithAbortPosition(abortAt))
	}
	p := parser.New(exprText, b, opts...)
	e := p.ParseFormula()
	if e == nil || (len(p.Errors()) > 0 && !p.Aborted()) {
		return types.Void, false
	}
	return e.Type, true
}
