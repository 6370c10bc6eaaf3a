package mal

import (
	"strconv"
	"strings"
)

// Sexp is implemented by every runtime value. SexpString renders the
// value; ps selects readable vs display rendering and may be nil,
// which means readable.
type Sexp interface {
	SexpString(ps *PrintState) string
}

type SexpSentinel int

const (
	SexpNull SexpSentinel = iota
	SexpEnd
)

func (sent SexpSentinel) SexpString(ps *PrintState) string {
	if sent == SexpNull {
		return "nil"
	}
	if sent == SexpEnd {
		return "End"
	}
	return ""
}

type SexpBool struct {
	Val bool
}

func (b *SexpBool) SexpString(ps *PrintState) string {
	if b.Val {
		return "true"
	}
	return "false"
}

type SexpInt struct {
	Val int64
}

func (i *SexpInt) SexpString(ps *PrintState) string {
	return strconv.FormatInt(i.Val, 10)
}

type SexpStr struct {
	S string
}

func (s *SexpStr) SexpString(ps *PrintState) string {
	if ps != nil && !ps.Readable {
		return s.S
	}
	return quoteString(s.S)
}

type SexpSymbol struct {
	name string
}

func (sym *SexpSymbol) SexpString(ps *PrintState) string {
	return sym.name
}

func (sym *SexpSymbol) Name() string {
	return sym.name
}

type SexpKeyword struct {
	name string
}

func (k *SexpKeyword) SexpString(ps *PrintState) string {
	return ":" + k.name
}

func (k *SexpKeyword) Name() string {
	return k.name
}

type SexpList struct {
	Val []Sexp
}

func (list *SexpList) SexpString(ps *PrintState) string {
	return joinSexp("(", list.Val, ")", ps)
}

type SexpArray struct {
	Val []Sexp
}

func (arr *SexpArray) SexpString(ps *PrintState) string {
	return joinSexp("[", arr.Val, "]", ps)
}

// SexpHash preserves insertion order: Keys[i] maps to Vals[i]. The two
// slices always have equal length and every key is a *SexpStr or a
// *SexpKeyword. MakeHash and the reader uphold this; nothing mutates a
// hash after construction.
type SexpHash struct {
	Keys []Sexp
	Vals []Sexp
}

func (hash *SexpHash) SexpString(ps *PrintState) string {
	var sb strings.Builder
	sb.WriteString("{")
	for i := range hash.Keys {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(hash.Keys[i].SexpString(ps))
		sb.WriteString(" ")
		sb.WriteString(hash.Vals[i].SexpString(ps))
	}
	sb.WriteString("}")
	return sb.String()
}

// UserFunction is the signature of every native builtin. The args have
// already been through the function's evaluation policy: the leading
// unevaluated count arrive as raw copies, the rest as evaluated values.
type UserFunction func(env *Env, name string, args []Sexp) (Sexp, error)

// SexpFunction is a native binding together with its argument
// evaluation policy. Construct only via MakeUserFunction or
// MakeSpecialForm so the policy is always explicit.
type SexpFunction struct {
	name        string
	unevaluated int
	fun         UserFunction
}

// MakeUserFunction builds an ordinary native: every argument is
// evaluated before the implementation runs.
func MakeUserFunction(name string, fn UserFunction) *SexpFunction {
	return &SexpFunction{name: name, fun: fn}
}

// MakeSpecialForm builds a native whose first unevaluated arguments are
// passed raw, letting the implementation control their evaluation.
func MakeSpecialForm(name string, unevaluated int, fn UserFunction) *SexpFunction {
	return &SexpFunction{name: name, unevaluated: unevaluated, fun: fn}
}

func (sf *SexpFunction) SexpString(ps *PrintState) string {
	return "fn [" + sf.name + "]"
}

func (sf *SexpFunction) Name() string {
	return sf.name
}

func joinSexp(open string, elems []Sexp, closer string, ps *PrintState) string {
	var sb strings.Builder
	sb.WriteString(open)
	for i, x := range elems {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(x.SexpString(ps))
	}
	sb.WriteString(closer)
	return sb.String()
}

func MakeList(elems []Sexp) *SexpList {
	return &SexpList{Val: elems}
}

// MakeHash builds a hash from alternating key/value pairs, enforcing
// the even-pairing and string-or-keyword key invariants up front.
func MakeHash(pairs []Sexp) (*SexpHash, error) {
	if len(pairs)%2 != 0 {
		return nil, ParseErrorf("last key in hashmap lacks value")
	}
	hash := &SexpHash{
		Keys: make([]Sexp, 0, len(pairs)/2),
		Vals: make([]Sexp, 0, len(pairs)/2),
	}
	for i := 0; i < len(pairs); i += 2 {
		switch pairs[i].(type) {
		case *SexpStr, *SexpKeyword:
		default:
			return nil, ParseErrorf("hashmap key must be string or keyword, got %s",
				TypeName(pairs[i]))
		}
		hash.Keys = append(hash.Keys, pairs[i])
		hash.Vals = append(hash.Vals, pairs[i+1])
	}
	return hash, nil
}

// CopySexp returns a structurally independent deep copy. Values are
// copied whenever they cross an ownership boundary (into or out of a
// scope, or as a self-evaluating result): no scope ever aliases
// structure held by another.
func CopySexp(x Sexp) Sexp {
	switch e := x.(type) {
	case SexpSentinel:
		return e
	case *SexpBool:
		return &SexpBool{Val: e.Val}
	case *SexpInt:
		return &SexpInt{Val: e.Val}
	case *SexpStr:
		return &SexpStr{S: e.S}
	case *SexpSymbol:
		return &SexpSymbol{name: e.name}
	case *SexpKeyword:
		return &SexpKeyword{name: e.name}
	case *SexpList:
		return &SexpList{Val: copySlice(e.Val)}
	case *SexpArray:
		return &SexpArray{Val: copySlice(e.Val)}
	case *SexpHash:
		return &SexpHash{Keys: copySlice(e.Keys), Vals: copySlice(e.Vals)}
	case *SexpFunction:
		cp := *e
		return &cp
	}
	return x
}

func copySlice(elems []Sexp) []Sexp {
	if elems == nil {
		return nil
	}
	out := make([]Sexp, len(elems))
	for i, x := range elems {
		out[i] = CopySexp(x)
	}
	return out
}

// TypeName names a value's variant for error messages.
func TypeName(x Sexp) string {
	switch e := x.(type) {
	case SexpSentinel:
		if e == SexpNull {
			return "nil"
		}
		return "end"
	case *SexpBool:
		if e.Val {
			return "true"
		}
		return "false"
	case *SexpInt:
		return "integer"
	case *SexpStr:
		return "string"
	case *SexpSymbol:
		return "symbol"
	case *SexpKeyword:
		return "keyword"
	case *SexpList:
		return "list"
	case *SexpArray:
		return "vector"
	case *SexpHash:
		return "hashmap"
	case *SexpFunction:
		return "function"
	}
	return "unknown"
}

func IsTruthy(expr Sexp) bool {
	switch e := expr.(type) {
	case *SexpBool:
		return e.Val
	case *SexpInt:
		return e.Val != 0
	case SexpSentinel:
		return e != SexpNull
	}
	return true
}
