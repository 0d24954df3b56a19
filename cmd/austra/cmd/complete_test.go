package cmd

import (
	"testing"

	"github.com/austra-lang/austra/internal/bindings"
	"github.com/austra-lang/austra/pkg/austra"
)

func TestRunCompleteMembersFindsLength(t *testing.T) {
	b, err := bindings.New()
	if err != nil {
		t.Fatalf("bindings.New: %v", err)
	}

	text := "[1.0, 2.0]."
	members, _, ok := austra.Members(text, text, b)
	if !ok {
		t.Fatalf("Members() failed")
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

func TestRunCompleteClassMembers(t *testing.T) {
	b, err := bindings.New()
	if err != nil {
		t.Fatalf("bindings.New: %v", err)
	}
	if len(austra.ClassMembers("math::", b)) == 0 {
		t.Error("expected math:: to list class members")
	}
}

func TestRunCompleteParamInfo(t *testing.T) {
	b, err := bindings.New()
	if err != nil {
		t.Fatalf("bindings.New: %v", err)
	}
	if len(austra.ParamInfo("sqrt(", b)) == 0 {
		t.Error("expected ParamInfo on an open call to return signatures")
	}
}
