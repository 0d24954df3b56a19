package completion

import (
	"testing"

	"github.com/austra-lang/austra/internal/bindings"
	"github.com/austra-lang/austra/internal/types"
)

func mustBindings(t *testing.T) *bindings.Bindings {
	t.Helper()
	b, err := bindings.New()
	if err != nil {
		t.Fatalf("bindings.New: %v", err)
	}
	return b
}

func TestTerminalObjectPathWalksDotChain(t *testing.T) {
	got := terminalObjectPath(`let v = [1.0] in v.`)
	if got != "v." {
		t.Errorf("terminalObjectPath = %q, want %q", got, "v.")
	}
}

func TestTerminalObjectPathSkipsMatchedParens(t *testing.T) {
	got := terminalObjectPath(`sqrt(4.0).`)
	if got != "sqrt(4.0)." {
		t.Errorf("terminalObjectPath = %q, want %q", got, "sqrt(4.0).")
	}
}

func TestMembersOnVectorLiteral(t *testing.T) {
	b := mustBindings(t)
	members, typ, ok := Members("[1.0, 2.0].", "[1.0, 2.0].", b)
	if !ok {
		t.Fatalf("Members() failed")
	}
	if typ != types.DVector {
		t.Errorf("result type = %s, want DVector", typ)
	}
	found := false
	for _, m := range members {
		if m.Name == "length" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a 'length' member, got %+v", members)
	}
}

func TestClassMembersOnMath(t *testing.T) {
	b := mustBindings(t)
	members := ClassMembers("math::", b)
	if len(members) == 0 {
		t.Errorf("expected math:: to list members")
	}
}

func TestParamInfoOnBareCall(t *testing.T) {
	b := mustBindings(t)
	sigs := ParamInfo("sqrt(", b)
	if len(sigs) == 0 {
		t.Fatalf("ParamInfo(\"sqrt(\") returned nothing")
	}
}

func TestTrimIncompleteAssignmentDropsTrailingPartial(t *testing.T) {
	got := trimIncompleteAssignment("set a = 1, b = 2, c =")
	if got != "set a = 1, b = 2" {
		t.Errorf("trimIncompleteAssignment = %q, want %q", got, "set a = 1, b = 2")
	}
}

func TestTrimIncompleteAssignmentLeavesCompleteInputAlone(t *testing.T) {
	got := trimIncompleteAssignment("1 + 2")
	if got != "1 + 2" {
		t.Errorf("trimIncompleteAssignment changed a complete fragment: %q", got)
	}
}

func TestSuggestFindsNearMiss(t *testing.T) {
	got := Suggest("lenght", []string{"length", "rows", "cols"})
	if got != "length" {
		t.Errorf("Suggest(lenght) = %q, want %q", got, "length")
	}
}

func TestMembersInsideStringLiteralIsEmpty(t *testing.T) {
	b := mustBindings(t)
	if _, _, ok := Members(`"abc`, `"abc`, b); ok {
		t.Errorf("completion inside a string literal should yield nothing")
	}
}

func TestMembersFiltersByPartialPrefix(t *testing.T) {
	b := mustBindings(t)
	members, typ, ok := Members("[1.0, 2.0].le", "[1.0, 2.0].le", b)
	if !ok {
		t.Fatalf("Members() failed")
	}
	if typ != types.DVector {
		t.Errorf("receiver type = %s, want DVector", typ)
	}
	for _, m := range members {
		if m.Name != "length" {
			t.Errorf("prefix 'le' should only match length, got %q", m.Name)
		}
	}
	if len(members) == 0 {
		t.Errorf("prefix 'le' should match length")
	}
}

func TestMembersSuggestsNearMissOnBadPrefix(t *testing.T) {
	b := mustBindings(t)
	members, _, ok := Members("[1.0].lenght", "[1.0].lenght", b)
	if !ok {
		t.Fatalf("Members() failed")
	}
	if len(members) != 1 || members[0].Name != "length" {
		t.Errorf("misspelled member should suggest length, got %+v", members)
	}
}

func TestMembersOnEmptyPathListsGlobalRoots(t *testing.T) {
	b := mustBindings(t)
	members, _, ok := Members("", "1 + ", b)
	if !ok {
		t.Fatalf("Members() on an operator tail should list global roots")
	}
	found := false
	for _, m := range members {
		if m.Name == "sqrt" {
			found = true
		}
	}
	if !found {
		t.Errorf("global roots should include sqrt, got %d members", len(members))
	}
}

func TestMembersListsOpenLambdaParameters(t *testing.T) {
	b := mustBindings(t)
	src := "[1.0, 2.0].map(acc => ac"
	members, _, ok := Members(src, src, b)
	if !ok {
		t.Fatalf("Members() failed inside an open lambda body")
	}
	found := false
	for _, m := range members {
		if m.Name == "acc" && m.Kind == "parameter" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the live lambda parameter acc, got %+v", members)
	}
}

func TestCompletionNeverPanicsOnPrefixes(t *testing.T) {
	b := mustBindings(t)
	full := `let x = 3 in x^2 + math::sqrt(4.0) + [1.0, 2.0].map(v => v + 1.0).length`
	for i := 0; i <= len(full); i++ {
		prefix := full[:i]
		Members(prefix, prefix, b)
		ClassMembers(prefix, b)
		ParamInfo(prefix, b)
	}
}
