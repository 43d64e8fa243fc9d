package mocking

import (
	"fmt"
	"strconv"
	"strings"
)

// maxLine is the length past which a call with arguments is printed one argument per line
const maxLine = 45

func renderArg(a any) string {
	switch v := a.(type) {
	case nil:
		return "nil"
	case Matcher:
		return v.String()
	case Proxy:
		return v.MockHandle().Name()
	case string:
		return strconv.Quote(v)
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func renderArgs(args []any) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = renderArg(a)
	}
	return out
}

// renderCall prints name.method(args); and switches to the block form when forced or too long
func renderCall(name, method string, args []any, multiline bool) string {
	qualified := name + "." + method
	rendered := renderArgs(args)
	line := qualified + "(" + strings.Join(rendered, ", ") + ");"
	if len(args) == 0 || !multiline && len(line) <= maxLine {
		return line
	}
	return qualified + "(\n    " + strings.Join(rendered, ",\n    ") + "\n);"
}

func (inv Invocation) String() string {
	return renderCall(inv.Target.String(), inv.Method, inv.Args, false)
}
