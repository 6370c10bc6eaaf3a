package mal

// Eval reduces one form in this scope. It is plainly recursive over the
// value tree; recursion depth is bounded by input nesting. Either a
// valid Sexp or an error comes back, never both.
func (env *Env) Eval(expr Sexp) (Sexp, error) {
	switch e := expr.(type) {
	case *SexpSymbol:
		value, ok := env.LookupVariable(e.name)
		if !ok {
			return SexpNull, EvalErrorf("unbound variable '%s'", e.name)
		}
		return CopySexp(value), nil
	case *SexpList:
		return env.evalList(e)
	case *SexpArray:
		return env.evalArray(e)
	case *SexpHash:
		return env.evalHash(e)
	}
	// self-evaluating atom
	return CopySexp(expr), nil
}

// evalList decides between a call and a plain list. A non-empty list
// whose head is a symbol bound as a Function in the chain is a call;
// anything else evaluates every element in order into a fresh list.
// The empty list evaluates to itself.
func (env *Env) evalList(list *SexpList) (Sexp, error) {
	if len(list.Val) == 0 {
		return CopySexp(list), nil
	}

	if sym, ok := list.Val[0].(*SexpSymbol); ok {
		if fn, found := env.LookupFunction(sym.name); found {
			return env.applyFunction(fn, list.Val[1:])
		}
	}

	elems := make([]Sexp, 0, len(list.Val))
	for _, elem := range list.Val {
		value, err := env.Eval(elem)
		if err != nil {
			return SexpNull, err
		}
		elems = append(elems, value)
	}
	return &SexpList{Val: elems}, nil
}

// applyFunction prepares a call's arguments under the function's
// evaluation policy: the first fn.unevaluated arguments are copied raw,
// the rest evaluated in order. The first evaluation error aborts the
// call before the native runs.
func (env *Env) applyFunction(fn *SexpFunction, args []Sexp) (Sexp, error) {
	call := make([]Sexp, 0, len(args))
	for i, arg := range args {
		if i < fn.unevaluated {
			call = append(call, CopySexp(arg))
			continue
		}
		value, err := env.Eval(arg)
		if err != nil {
			return SexpNull, err
		}
		call = append(call, value)
	}
	return fn.fun(env, fn.name, call)
}

func (env *Env) evalArray(arr *SexpArray) (Sexp, error) {
	elems := make([]Sexp, 0, len(arr.Val))
	for _, elem := range arr.Val {
		value, err := env.Eval(elem)
		if err != nil {
			return SexpNull, err
		}
		elems = append(elems, value)
	}
	return &SexpArray{Val: elems}, nil
}

// evalHash rebuilds a hash with its keys copied verbatim, never
// evaluated, and its values evaluated in stored order.
func (env *Env) evalHash(hash *SexpHash) (Sexp, error) {
	keys := make([]Sexp, 0, len(hash.Keys))
	vals := make([]Sexp, 0, len(hash.Vals))
	for i := range hash.Keys {
		keys = append(keys, CopySexp(hash.Keys[i]))
		value, err := env.Eval(hash.Vals[i])
		if err != nil {
			return SexpNull, err
		}
		vals = append(vals, value)
	}
	return &SexpHash{Keys: keys, Vals: vals}, nil
}
