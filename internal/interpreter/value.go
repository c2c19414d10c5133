package interpreter

import (
	"fmt"
	"strconv"
)

// Value is a runtime Lox value. The concrete dynamic type tags the variant:
// nil, bool, float64, string, one of the Callable-implementing pointer
// types (*Function, *Class, *nativeFn), or *Instance.
type Value = any

// IsTruthy implements Lox's truthiness rule: nil and false are falsy,
// everything else is truthy.
func IsTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// IsEqual implements structural equality per variant: nil equals only nil,
// numbers compare by IEEE ==, strings by value, and everything else
// (callables, instances) by identity — which for the pointer types golox
// uses is exactly Go's == on interface values.
func IsEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// Stringify renders v the way `print` and the stdlib `str` native do.
func Stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
