package bindings

import (
	_ "embed"
	"fmt"

	"github.com/austra-lang/austra/internal/types"
	"github.com/austra-lang/austra/pkg/token"
	"gopkg.in/yaml.v3"
)

//go:embed table.yaml
var tableYAML []byte

// rawEntry is the YAML DSL shape design note §9 asks for: each entry
// stores (implementor, kind, member_name, formal_types, return_type,
// lambda_mask, sentinel_flags) and is resolved to a binding at load
// time rather than to a function pointer (AUSTRA's emitter calls the
// host runtime by name/signature, per §1's external-collaborator
// boundary, so there is nothing to point to here).
type rawEntry struct {
	Implementor string     `yaml:"implementor"`
	Kind        string     `yaml:"kind"` // "instance" | "static" | "ctor"
	Name        string     `yaml:"name"`
	Params      []rawParam `yaml:"params"`
	Variadic    bool       `yaml:"variadic"`
	Returns     string     `yaml:"returns"`
	Doc         string     `yaml:"doc"`
}

type rawParam struct {
	Type     string `yaml:"type"`
	Sentinel string `yaml:"sentinel"` // "", "zero", "one", "random", "normal_random"
	Lambda   bool   `yaml:"lambda"`
}

type rawProperty struct {
	Implementor string `yaml:"implementor"`
	Name        string `yaml:"name"`
	Returns     string `yaml:"returns"`
	Doc         string `yaml:"doc"`
}

type rawTable struct {
	Methods    []rawEntry    `yaml:"methods"`
	Properties []rawProperty `yaml:"properties"`
}

func loadTable() (*rawTable, error) {
	var t rawTable
	if err := yaml.Unmarshal(tableYAML, &t); err != nil {
		return nil, fmt.Errorf("bindings: parsing embedded table: %w", err)
	}
	return &t, nil
}

var sentinelNames = map[string]Sentinel{
	"":              NoSentinel,
	"zero":          Zero,
	"one":           One,
	"random":        Random,
	"normal_random": NormalRandom,
}

var kindNames = map[string]MethodKind{
	"instance": Instance,
	"static":   Static,
	"ctor":     Ctor,
}

// resolveType resolves a table type name. "math" and other pseudo-class
// implementors are not part of the real type universe, so callers that
// need a types.Type (properties, instance methods) use this; classMethod
// implementors are kept as plain strings instead.
func resolveType(names *types.Names, name string) (types.Type, error) {
	t, ok := names.Lookup(name)
	if !ok {
		return types.Void, fmt.Errorf("bindings: unknown type name %q in table", name)
	}
	return t, nil
}

func (b *Bindings) populate(t *rawTable) error {
	for _, e := range t.Methods {
		md, err := b.buildMethodData(e)
		if err != nil {
			return err
		}

		switch md.Kind {
		case Instance:
			owner, err := resolveType(b.typeNames, e.Implementor)
			if err != nil {
				return err
			}
			k := key{owner, token.Normalize(e.Name)}
			b.methods[k] = md
			list := b.methodOverloads[k]
			list.Overloads = append(list.Overloads, md)
			b.methodOverloads[k] = list
			b.members[owner] = append(b.members[owner], Member{Name: e.Name, Kind: "method", ReturnType: md.ReturnType, Doc: e.Doc})

		case Static, Ctor:
			classKey := token.Normalize(e.Implementor) + "." + token.Normalize(e.Name)
			list := b.classMethods[classKey]
			list.Overloads = append(list.Overloads, md)
			b.classMethods[classKey] = list
			cname := token.Normalize(e.Implementor)
			b.classNames[cname] = e.Implementor
			b.classMembers[cname] = append(b.classMembers[cname], Member{Name: e.Name, Kind: "method", ReturnType: md.ReturnType, Doc: e.Doc})

			// math::f(...) is additionally reachable bare, as f(...), and
			// so is a root-class constructor named after its class, as C(...).
			if token.Normalize(e.Implementor) == "math" ||
				(md.Kind == Ctor && token.Normalize(e.Name) == token.Normalize(e.Implementor)) {
				bareKey := "." + token.Normalize(e.Name)
				bareList := b.classMethods[bareKey]
				bareList.Overloads = append(bareList.Overloads, md)
				b.classMethods[bareKey] = bareList
			}
		}
	}

	for _, p := range t.Properties {
		owner, err := resolveType(b.typeNames, p.Implementor)
		if err != nil {
			return err
		}
		ret, err := resolveType(b.typeNames, p.Returns)
		if err != nil {
			return err
		}
		prop := Property{Implementor: p.Implementor, Name: p.Name, ReturnType: ret, Doc: p.Doc}
		b.properties[key{owner, token.Normalize(p.Name)}] = prop
		b.members[owner] = append(b.members[owner], Member{Name: p.Name, Kind: "property", ReturnType: ret, Doc: p.Doc})
	}

	return nil
}

func (b *Bindings) buildMethodData(e rawEntry) (MethodData, error) {
	kind, ok := kindNames[e.Kind]
	if !ok {
		return MethodData{}, fmt.Errorf("bindings: unknown method kind %q for %s.%s", e.Kind, e.Implementor, e.Name)
	}

	ret, err := resolveType(b.typeNames, e.Returns)
	if err != nil {
		return MethodData{}, err
	}

	params := make([]Param, 0, len(e.Params))
	for _, rp := range e.Params {
		sentinel, ok := sentinelNames[rp.Sentinel]
		if !ok {
			return MethodData{}, fmt.Errorf("bindings: unknown sentinel %q for %s.%s", rp.Sentinel, e.Implementor, e.Name)
		}
		var pt types.Type
		if sentinel == NoSentinel {
			pt, err = resolveType(b.typeNames, rp.Type)
			if err != nil {
				return MethodData{}, err
			}
		}
		params = append(params, Param{Type: pt, Sentinel: sentinel, IsLambda: rp.Lambda})
	}

	return MethodData{
		Implementor: e.Implementor,
		Name:        e.Name,
		Kind:        kind,
		Params:      params,
		Variadic:    e.Variadic,
		ReturnType:  ret,
		Doc:         e.Doc,
	}, nil
}
