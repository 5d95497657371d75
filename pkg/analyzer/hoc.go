package analyzer

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// wrapperNames is the fixed set of recognized higher-order wrapper callees,
// in both bare and React-qualified spellings.
var wrapperNames = map[string]bool{
	"memo":             true,
	"forwardRef":       true,
	"lazy":             true,
	"React.memo":       true,
	"React.forwardRef": true,
	"React.lazy":       true,
}

// IsWrapperCall reports whether a call expression's callee is a recognized
// higher-order wrapper (memo, forwardRef, lazy).
func IsWrapperCall(call *ts.Node, source []byte) bool {
	return wrapperNames[calleeName(call, source)]
}

// calleeName returns the callee text of a call_expression ("memo",
// "React.forwardRef", ...), or "" for non-call nodes.
func calleeName(call *ts.Node, source []byte) string {
	if call == nil || call.Kind() != "call_expression" {
		return ""
	}
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	return fn.Utf8Text(source)
}

// UnwrapWrapperCall unwraps a recognized wrapper call (including nested
// chains like memo(forwardRef(...))) down to the underlying function-like
// node. Returns the inner node plus the wrapper chain, outermost first.
//
// Returns nil when the call is not a recognized wrapper, or when the
// innermost argument is an identifier rather than an inline function (the
// identifier's own declaration is analyzed independently).
func UnwrapWrapperCall(call *ts.Node, source []byte) (*ts.Node, []string) {
	if !IsWrapperCall(call, source) {
		return nil, nil
	}

	wrappers := []string{calleeName(call, source)}

	arg := firstCallArgument(call)
	for arg != nil {
		switch {
		case isFunctionLike(arg):
			return arg, wrappers

		case arg.Kind() == "parenthesized_expression":
			arg = arg.NamedChild(0)

		case arg.Kind() == "call_expression" && IsWrapperCall(arg, source):
			wrappers = append(wrappers, calleeName(arg, source))
			arg = firstCallArgument(arg)

		default:
			// Identifier or unrecognized call: nothing to unwrap inline.
			return nil, nil
		}
	}
	return nil, nil
}

// firstCallArgument returns the first argument of a call_expression.
func firstCallArgument(call *ts.Node) *ts.Node {
	if call == nil {
		return nil
	}
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for i := uint(0); i < uint(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		if child.Kind() == "comment" {
			continue
		}
		return child
	}
	return nil
}
