package mal

// ArithFunction builds the native for one of + - * /. Every argument
// must be an integer. + and * fold from their identity element; - and /
// fold from the first argument, except that a lone argument to - is
// negated and a lone argument to / comes back unchanged.
func ArithFunction(name string) UserFunction {
	return func(env *Env, _ string, args []Sexp) (Sexp, error) {
		nums := make([]int64, len(args))
		for i, arg := range args {
			n, ok := arg.(*SexpInt)
			if !ok {
				if i == 0 {
					return SexpNull, EvalErrorf("first argument to %s not a number", name)
				}
				return SexpNull, EvalErrorf("argument to %s not a number", name)
			}
			nums[i] = n.Val
		}

		var accum int64
		rest := nums

		switch name {
		case "+":
			accum = 0
		case "*":
			accum = 1
		case "-", "/":
			if len(nums) == 0 {
				return &SexpInt{Val: 0}, nil
			}
			if len(nums) == 1 {
				if name == "-" {
					return &SexpInt{Val: -nums[0]}, nil
				}
				return &SexpInt{Val: nums[0]}, nil
			}
			accum = nums[0]
			rest = nums[1:]
		}

		for _, n := range rest {
			switch name {
			case "+":
				accum += n
			case "*":
				accum *= n
			case "-":
				accum -= n
			case "/":
				if n == 0 {
					return SexpNull, EvalErrorf("division by 0")
				}
				accum /= n
			}
		}
		return &SexpInt{Val: accum}, nil
	}
}

// CompareFunction builds the native for one of < <= > >=. All
// arguments must be integers; the first is compared against each later
// one and the verdicts are conjoined. No arguments yields false.
func CompareFunction(name string) UserFunction {
	return func(env *Env, _ string, args []Sexp) (Sexp, error) {
		if len(args) == 0 {
			return &SexpBool{Val: false}, nil
		}

		first, ok := args[0].(*SexpInt)
		if !ok {
			return SexpNull, EvalErrorf("first argument to %s not a number", name)
		}

		res := true
		for _, arg := range args[1:] {
			n, ok := arg.(*SexpInt)
			if !ok {
				return SexpNull, EvalErrorf("comparison by something other than number")
			}
			switch name {
			case "<":
				res = res && first.Val < n.Val
			case "<=":
				res = res && first.Val <= n.Val
			case ">":
				res = res && first.Val > n.Val
			case ">=":
				res = res && first.Val >= n.Val
			}
		}
		return &SexpBool{Val: res}, nil
	}
}

// EqualFunction implements = over two or more arguments: each later
// argument is compared structurally against the first. A variant
// mismatch is inequality, not an error.
func EqualFunction(env *Env, name string, args []Sexp) (Sexp, error) {
	if len(args) < 2 {
		return SexpNull, WrongNargs
	}
	for _, arg := range args[1:] {
		if !sexpEqual(args[0], arg) {
			return &SexpBool{Val: false}, nil
		}
	}
	return &SexpBool{Val: true}, nil
}

func sexpEqual(a Sexp, b Sexp) bool {
	switch x := a.(type) {
	case SexpSentinel:
		y, ok := b.(SexpSentinel)
		return ok && x == y
	case *SexpBool:
		y, ok := b.(*SexpBool)
		return ok && x.Val == y.Val
	case *SexpInt:
		y, ok := b.(*SexpInt)
		return ok && x.Val == y.Val
	case *SexpStr:
		y, ok := b.(*SexpStr)
		return ok && x.S == y.S
	case *SexpSymbol:
		y, ok := b.(*SexpSymbol)
		return ok && x.name == y.name
	case *SexpKeyword:
		y, ok := b.(*SexpKeyword)
		return ok && x.name == y.name
	case *SexpList:
		y, ok := b.(*SexpList)
		return ok && slicesEqual(x.Val, y.Val)
	case *SexpArray:
		y, ok := b.(*SexpArray)
		return ok && slicesEqual(x.Val, y.Val)
	case *SexpHash:
		y, ok := b.(*SexpHash)
		return ok && slicesEqual(x.Keys, y.Keys) && slicesEqual(x.Vals, y.Vals)
	case *SexpFunction:
		y, ok := b.(*SexpFunction)
		return ok && x == y
	}
	return false
}

func slicesEqual(a []Sexp, b []Sexp) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sexpEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// DefFunction implements def!. The name arrives raw (one unevaluated
// leading argument); the value arrives evaluated. The binding goes into
// the current scope, replacing any prior Variable of that name there,
// and a copy of the bound value is returned.
func DefFunction(env *Env, name string, args []Sexp) (Sexp, error) {
	if len(args) == 0 {
		return SexpNull, EvalErrorf("no symbol to define")
	}
	sym, ok := args[0].(*SexpSymbol)
	if !ok {
		return SexpNull, EvalErrorf("not a symbol")
	}
	if len(args) < 2 {
		return SexpNull, EvalErrorf("symbol value missing")
	}
	if len(args) > 2 {
		return SexpNull, EvalErrorf("excessive symbol values")
	}

	env.Define(sym.name, args[1])
	return CopySexp(args[1]), nil
}

// LetFunction implements let*. Both arguments arrive raw. The bindings
// form must be a list or vector of alternating symbol/value pairs; each
// value form is evaluated in the child scope, so later bindings see
// earlier ones. The body is evaluated in the child scope, which is
// discarded afterward.
func LetFunction(env *Env, name string, args []Sexp) (Sexp, error) {
	if len(args) == 0 {
		return SexpNull, EvalErrorf("no bindings")
	}

	var bindings []Sexp
	switch b := args[0].(type) {
	case *SexpList:
		bindings = b.Val
	case *SexpArray:
		bindings = b.Val
	default:
		return SexpNull, EvalErrorf("no valid list/vector of bindings")
	}

	if len(args) < 2 {
		return SexpNull, EvalErrorf("no expression to evaluate using bindings")
	}
	if len(args) > 2 {
		return SexpNull, EvalErrorf("too many expressions to evaluate")
	}
	if len(bindings)%2 != 0 {
		return SexpNull, EvalErrorf("unterminated binding")
	}

	child := NewNamedEnv(env, "let*")
	for i := 0; i < len(bindings); i += 2 {
		sym, ok := bindings[i].(*SexpSymbol)
		if !ok {
			return SexpNull, EvalErrorf("can not set binding for non-symbol")
		}
		value, err := child.Eval(bindings[i+1])
		if err != nil {
			return SexpNull, err
		}
		child.Define(sym.name, value)
	}

	return child.Eval(args[1])
}
