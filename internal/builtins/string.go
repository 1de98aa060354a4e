package builtins

import (
	"strings"
	"unicode"

	"github.com/go-endbasic/endbasic/internal/types"
)

// RegisterString adds LEN, LEFT, RIGHT, MID, LTRIM, and RTRIM to r.
// Indexing and lengths count Unicode scalar values (runes), matching
// how string comparison is defined.
func RegisterString(r *Registry) {
	r.Register(&Entry{Name: "LEN", Category: CategoryString, Function: fnLen,
		ReturnType: ReturnInteger, Description: "Returns the number of characters in a STRING."})
	r.Register(&Entry{Name: "LEFT", Category: CategoryString, Function: fnLeft,
		ReturnType: ReturnString, Description: "Returns the first n characters of a STRING."})
	r.Register(&Entry{Name: "RIGHT", Category: CategoryString, Function: fnRight,
		ReturnType: ReturnString, Description: "Returns the last n characters of a STRING."})
	r.Register(&Entry{Name: "MID", Category: CategoryString, Function: fnMid,
		ReturnType: ReturnString, Description: "Returns a substring starting at a 1-indexed position."})
	r.Register(&Entry{Name: "LTRIM", Category: CategoryString, Function: fnLTrim,
		ReturnType: ReturnString, Description: "Removes leading whitespace from a STRING."})
	r.Register(&Entry{Name: "RTRIM", Category: CategoryString, Function: fnRTrim,
		ReturnType: ReturnString, Description: "Removes trailing whitespace from a STRING."})
}

func stringArg(name string, args []types.Value, i int) (string, error) {
	if i >= len(args) {
		return "", argErrorf("%s is missing an argument", name)
	}
	s, ok := args[i].(types.String)
	if !ok {
		return "", argErrorf("%s expects a STRING argument, found %s", name, args[i].Kind())
	}
	return string(s), nil
}

func intArg(name string, args []types.Value, i int) (int, error) {
	if i >= len(args) {
		return 0, argErrorf("%s is missing an argument", name)
	}
	n, ok := args[i].(types.Integer)
	if !ok {
		return 0, argErrorf("%s expects an INTEGER argument, found %s", name, args[i].Kind())
	}
	return int(n), nil
}

func fnLen(m Machine, args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return nil, argErrorf("LEN expects one argument")
	}
	s, err := stringArg("LEN", args, 0)
	if err != nil {
		return nil, err
	}
	return types.Integer(len([]rune(s))), nil
}

func fnLeft(m Machine, args []types.Value) (types.Value, error) {
	if len(args) != 2 {
		return nil, argErrorf("LEFT expects two arguments")
	}
	s, err := stringArg("LEFT", args, 0)
	if err != nil {
		return nil, err
	}
	n, err := intArg("LEFT", args, 1)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, argErrorf("LEFT's count must not be negative")
	}
	runes := []rune(s)
	if n > len(runes) {
		n = len(runes)
	}
	return types.String(runes[:n]), nil
}

func fnRight(m Machine, args []types.Value) (types.Value, error) {
	if len(args) != 2 {
		return nil, argErrorf("RIGHT expects two arguments")
	}
	s, err := stringArg("RIGHT", args, 0)
	if err != nil {
		return nil, err
	}
	n, err := intArg("RIGHT", args, 1)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, argErrorf("RIGHT's count must not be negative")
	}
	runes := []rune(s)
	if n > len(runes) {
		n = len(runes)
	}
	return types.String(runes[len(runes)-n:]), nil
}

func fnMid(m Machine, args []types.Value) (types.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, argErrorf("MID expects two or three arguments")
	}
	s, err := stringArg("MID", args, 0)
	if err != nil {
		return nil, err
	}
	start, err := intArg("MID", args, 1)
	if err != nil {
		return nil, err
	}
	if start < 1 {
		return nil, argErrorf("MID's start position must be at least 1")
	}
	runes := []rune(s)
	from := start - 1
	if from > len(runes) {
		from = len(runes)
	}
	remaining := len(runes) - from
	n := remaining
	if len(args) == 3 {
		n, err = intArg("MID", args, 2)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, argErrorf("MID's count must not be negative")
		}
		if n > remaining {
			n = remaining
		}
	}
	return types.String(runes[from : from+n]), nil
}

func fnLTrim(m Machine, args []types.Value) (types.Value, error) {
	s, err := stringArg("LTRIM", args, 0)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, argErrorf("LTRIM expects one argument")
	}
	return types.String(strings.TrimLeftFunc(s, unicode.IsSpace)), nil
}

func fnRTrim(m Machine, args []types.Value) (types.Value, error) {
	s, err := stringArg("RTRIM", args, 0)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, argErrorf("RTRIM expects one argument")
	}
	return types.String(strings.TrimRightFunc(s, unicode.IsSpace)), nil
}
