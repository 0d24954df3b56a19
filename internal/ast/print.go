package ast

import (
	"fmt"
	"strings"
)

// String renders a compact debug form of the tree; not used for
// round-tripping source, only for test failure messages and CLI dumps.
func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case KindConstant:
		return e.Const.String()
	case KindParameter:
		return fmt.Sprintf("$%d", e.ParamIndex)
	case KindArithmetic:
		if e.Right == nil {
			return fmt.Sprintf("(%s%s)", e.Op, e.Left)
		}
		return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
	case KindCall:
		return fmt.Sprintf("%s(%s)", callName(e), joinArgs(e.Args))
	case KindNew:
		return fmt.Sprintf("new %s(%s)", e.ClassName, joinArgs(e.Args))
	case KindMember:
		return fmt.Sprintf("%s.%s", e.Target, e.Member)
	case KindCondition:
		var sb strings.Builder
		for i := range e.Conds {
			if i == 0 {
				sb.WriteString("if ")
			} else {
				sb.WriteString(" elif ")
			}
			fmt.Fprintf(&sb, "%s then %s", e.Conds[i], e.Thens[i])
		}
		fmt.Fprintf(&sb, " else %s", e.Else)
		return sb.String()
	case KindLambda:
		return fmt.Sprintf("lambda(%v) => %s", e.Params, e.Body)
	case KindConvert:
		return fmt.Sprintf("convert<%s>(%s)", e.Type, e.Operand)
	case KindBlock:
		parts := make([]string, len(e.Stmts))
		for i, s := range e.Stmts {
			parts[i] = s.String()
		}
		return strings.Join(parts, "; ")
	case KindAssign:
		return fmt.Sprintf("%s = %s", e.Name, e.RHS)
	default:
		return "<invalid expr>"
	}
}

func callName(e *Expr) string {
	if e.ClassName != "" {
		return e.ClassName + "::" + e.Method
	}
	if e.Target != nil {
		return e.Target.String() + "." + e.Method
	}
	return e.Method
}

func joinArgs(args []*Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}
