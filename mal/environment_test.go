package mal

import (
	"io"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test020EnvDefineAndChainedLookup(t *testing.T) {

	cv.Convey(`Given a binding in an outer scope, inner scopes should see it until they shadow it`, t, func() {

		outer := NewNamedEnv(nil, "outer")
		inner := NewNamedEnv(outer, "inner")

		outer.Define("x", &SexpInt{Val: 5})

		value, ok := inner.LookupVariable("x")
		cv.So(ok, cv.ShouldBeTrue)
		cv.So(value.SexpString(nil), cv.ShouldEqual, "5")

		inner.Define("x", &SexpInt{Val: 7})
		value, ok = inner.LookupVariable("x")
		cv.So(ok, cv.ShouldBeTrue)
		cv.So(value.SexpString(nil), cv.ShouldEqual, "7")

		// the outer binding is untouched by the shadow
		value, ok = outer.LookupVariable("x")
		cv.So(ok, cv.ShouldBeTrue)
		cv.So(value.SexpString(nil), cv.ShouldEqual, "5")
	})

	cv.Convey(`A miss at every level should report not-found rather than an error`, t, func() {

		env := NewEnv(nil)
		_, ok := env.LookupVariable("nope")
		cv.So(ok, cv.ShouldBeFalse)
	})
}

func Test021EnvDefineReplacesInSameScope(t *testing.T) {

	cv.Convey(`Re-defining a name in the same scope should replace, not stack`, t, func() {

		env := NewEnv(nil)
		env.Define("x", &SexpInt{Val: 1})
		env.Define("x", &SexpInt{Val: 2})

		value, ok := env.LookupVariable("x")
		cv.So(ok, cv.ShouldBeTrue)
		cv.So(value.SexpString(nil), cv.ShouldEqual, "2")
	})
}

func Test022EnvKindSplitTables(t *testing.T) {

	cv.Convey(`A Variable and a Function of the same name should coexist, found by kind`, t, func() {

		env := NewEnv(nil)
		env.Define("f", &SexpInt{Val: 9})
		env.BindFunction("f", 0, func(env *Env, name string, args []Sexp) (Sexp, error) {
			return &SexpInt{Val: 42}, nil
		})

		value, ok := env.LookupVariable("f")
		cv.So(ok, cv.ShouldBeTrue)
		cv.So(value.SexpString(nil), cv.ShouldEqual, "9")

		fn, ok := env.LookupFunction("f")
		cv.So(ok, cv.ShouldBeTrue)
		cv.So(fn.Name(), cv.ShouldEqual, "f")

		result, err := env.EvalString("(f)")
		cv.So(err, cv.ShouldBeNil)
		cv.So(result.SexpString(nil), cv.ShouldEqual, "42")
	})
}

func Test023EnvDefineCopiesValues(t *testing.T) {

	cv.Convey(`A scope should never alias structure held by the caller`, t, func() {

		env := NewEnv(nil)
		arr := &SexpArray{Val: []Sexp{&SexpInt{Val: 1}, &SexpInt{Val: 2}}}
		env.Define("xs", arr)

		// mutating the caller's value must not reach the binding
		arr.Val[0] = &SexpInt{Val: 99}

		value, ok := env.LookupVariable("xs")
		cv.So(ok, cv.ShouldBeTrue)
		cv.So(value.SexpString(nil), cv.ShouldEqual, "[1 2]")
	})
}

func Test024BaseEnvRegistersBuiltins(t *testing.T) {

	cv.Convey(`BaseEnv should carry every reference builtin as a Function binding`, t, func() {

		env := BaseEnv()
		for _, name := range []string{
			"+", "-", "*", "/", "<", "<=", ">", ">=", "=", "def!", "let*",
		} {
			fn, ok := env.LookupFunction(name)
			cv.So(ok, cv.ShouldBeTrue)
			cv.So(fn.Name(), cv.ShouldEqual, name)
		}

		// builtins live in the Function table only
		_, ok := env.LookupVariable("+")
		cv.So(ok, cv.ShouldBeFalse)
	})
}

func Test025ReadSignalsEmptyInput(t *testing.T) {

	cv.Convey(`Read of formless input should report io.EOF, never an internal marker`, t, func() {

		env := NewEnv(nil)
		for _, src := range []string{"", "   ", "; just a comment", ",,,"} {
			expr, err := env.Read(src)
			cv.So(err, cv.ShouldEqual, io.EOF)
			cv.So(expr, cv.ShouldEqual, SexpNull)
		}
	})

	cv.Convey(`EvalString of empty input should quietly evaluate to nil`, t, func() {

		env := BaseEnv()
		result, err := env.EvalString("")
		cv.So(err, cv.ShouldBeNil)
		cv.So(result, cv.ShouldEqual, SexpNull)
	})
}
