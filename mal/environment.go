package mal

import (
	"bytes"
	"io"
	"sort"
	"strings"
)

// Env is one scope in the environment chain: a symbol table split into
// kind-specific Variable and Function tables, plus a non-owning link to
// the enclosing scope. Scopes nest strictly: each let* body runs in a
// child whose lifetime is contained in its creator's call.
type Env struct {
	vars  map[string]Sexp
	funcs map[string]*SexpFunction
	outer *Env
	name  string

	parser *Parser
}

// NewEnv creates an empty scope. outer may be nil for a root scope.
func NewEnv(outer *Env) *Env {
	return &Env{
		vars:  make(map[string]Sexp),
		funcs: make(map[string]*SexpFunction),
		outer: outer,
	}
}

func NewNamedEnv(outer *Env, name string) *Env {
	env := NewEnv(outer)
	env.name = name
	return env
}

// BaseEnv returns a root scope with the reference builtins registered:
// arithmetic, comparisons, equality, def! and let*.
func BaseEnv() *Env {
	env := NewNamedEnv(nil, "global")

	env.BindFunction("def!", 1, DefFunction)
	env.BindFunction("let*", 2, LetFunction)

	for _, name := range []string{"+", "-", "*", "/"} {
		env.BindFunction(name, 0, ArithFunction(name))
	}
	for _, name := range []string{"<", "<=", ">", ">="} {
		env.BindFunction(name, 0, CompareFunction(name))
	}
	env.BindFunction("=", 0, EqualFunction)

	return env
}

func (env *Env) MakeSymbol(name string) *SexpSymbol {
	return &SexpSymbol{name: name}
}

// Define inserts or replaces a Variable binding in this scope only;
// outer scopes are never searched or touched. The value is deep-copied
// on the way in so no structure is shared with the caller.
func (env *Env) Define(name string, value Sexp) {
	env.vars[name] = CopySexp(value)
}

// LookupVariable walks this scope then each outer scope, returning the
// nearest Variable binding. A miss is not an error at this level; the
// evaluator reports unbound symbols.
func (env *Env) LookupVariable(name string) (Sexp, bool) {
	for e := env; e != nil; e = e.outer {
		if value, ok := e.vars[name]; ok {
			return value, true
		}
	}
	return SexpNull, false
}

// LookupFunction is the same chained walk restricted to Function
// bindings. Variables and Functions of the same name coexist because
// lookup is kind-specific.
func (env *Env) LookupFunction(name string) (*SexpFunction, bool) {
	for e := env; e != nil; e = e.outer {
		if fn, ok := e.funcs[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// BindFunction registers a native in this scope, replacing any prior
// Function binding of the same name here. unevaluated is the count of
// leading call arguments passed to fn raw.
func (env *Env) BindFunction(name string, unevaluated int, fn UserFunction) {
	if unevaluated > 0 {
		env.funcs[name] = MakeSpecialForm(name, unevaluated, fn)
		return
	}
	env.funcs[name] = MakeUserFunction(name, fn)
}

// Read parses a single form from text. Input holding no form at all
// reports io.EOF rather than handing out an internal sentinel.
func (env *Env) Read(text string) (Sexp, error) {
	if env.parser == nil {
		env.parser = env.NewParser()
	}
	env.parser.ResetAddNewInput(bytes.NewBufferString(text))
	expr, err := env.parser.ParseExpression(0)
	if err != nil {
		return SexpNull, err
	}
	if expr == SexpEnd {
		return SexpNull, io.EOF
	}
	return expr, nil
}

// EvalString reads one form from text and evaluates it in this scope.
// Empty input is not an error; it evaluates to nil.
func (env *Env) EvalString(text string) (Sexp, error) {
	expr, err := env.Read(text)
	if err == io.EOF {
		return SexpNull, nil
	}
	if err != nil {
		return SexpNull, err
	}
	return env.Eval(expr)
}

// Show renders the bindings of this scope for the repl's .ls command.
func (env *Env) Show() string {
	var sb strings.Builder
	for e := env; e != nil; e = e.outer {
		label := e.name
		if label == "" {
			label = "scope"
		}
		sb.WriteString(label + ":\n")
		names := make([]string, 0, len(e.vars))
		for name := range e.vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString("    " + name + " -> " + e.vars[name].SexpString(nil) + "\n")
		}
		fnames := make([]string, 0, len(e.funcs))
		for name := range e.funcs {
			fnames = append(fnames, name)
		}
		sort.Strings(fnames)
		for _, name := range fnames {
			sb.WriteString("    " + name + " -> " + e.funcs[name].SexpString(nil) + "\n")
		}
	}
	return sb.String()
}
