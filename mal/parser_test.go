package mal

import (
	"strings"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func readString(t *testing.T, input string) (Sexp, error) {
	env := NewEnv(nil)
	return env.Read(input)
}

func Test010ParserReadsAtomsAndCollections(t *testing.T) {

	cv.Convey(`Given source text for each form shape, reading then printing should reproduce it`, t, func() {

		for _, src := range []string{
			"nil",
			"true",
			"false",
			"42",
			"-7",
			"abc-def",
			":key",
			`"hi there"`,
			"(+ 1 2)",
			"[1 [2 3] []]",
			`{:a 1 "b" [2]}`,
			"(def! x (let* (y 1) y))",
		} {
			expr, err := readString(t, src)
			cv.So(err, cv.ShouldBeNil)
			cv.So(expr.SexpString(nil), cv.ShouldEqual, src)
		}
	})

	cv.Convey(`nil should read as the null sentinel, not a symbol`, t, func() {

		expr, err := readString(t, "nil")
		cv.So(err, cv.ShouldBeNil)
		cv.So(expr, cv.ShouldEqual, SexpNull)
	})
}

func Test011ParserExpandsReaderMacros(t *testing.T) {

	cv.Convey(`Quote-family shorthands should read as their wrapping call forms`, t, func() {

		for src, want := range map[string]string{
			"'(1 2)":  "(quote (1 2))",
			"`x":      "(quasiquote x)",
			"~x":      "(unquote x)",
			"~@(a b)": "(splice-unquote (a b))",
			"@box":    "(deref box)",
			"''x":     "(quote (quote x))",
		} {
			expr, err := readString(t, src)
			cv.So(err, cv.ShouldBeNil)
			cv.So(expr.SexpString(nil), cv.ShouldEqual, want)
		}
	})

	cv.Convey(`A dangling quote with no form behind it should be a parse error`, t, func() {

		_, err := readString(t, "'")
		cv.So(err, cv.ShouldNotBeNil)
		_, isParse := err.(*ParseError)
		cv.So(isParse, cv.ShouldBeTrue)
	})
}

func Test012ParserOrdersWithMeta(t *testing.T) {

	cv.Convey(`^meta target should read metadata first but emit (with-meta target metadata)`, t, func() {

		expr, err := readString(t, "^{:a 1} [1 2 3]")
		cv.So(err, cv.ShouldBeNil)
		cv.So(expr.SexpString(nil), cv.ShouldEqual, "(with-meta [1 2 3] {:a 1})")
	})

	cv.Convey(`A caret with only one following form should be a parse error`, t, func() {

		_, err := readString(t, "^{:a 1}")
		cv.So(err, cv.ShouldNotBeNil)
		_, isParse := err.(*ParseError)
		cv.So(isParse, cv.ShouldBeTrue)
	})
}

func Test013ParserReportsUnterminatedCollections(t *testing.T) {

	cv.Convey(`Input ending inside a collection should name the collection kind`, t, func() {

		for src, msg := range map[string]string{
			"(1 2":    "unterminated list",
			"[1 2":    "unterminated vector",
			"{:a 1":   "unterminated hashmap",
			"(1 [2 3": "unterminated vector",
		} {
			_, err := readString(t, src)
			cv.So(err, cv.ShouldNotBeNil)
			cv.So(err.Error(), cv.ShouldEqual, msg)
			_, isParse := err.(*ParseError)
			cv.So(isParse, cv.ShouldBeTrue)
		}
	})
}

func Test014ParserReportsMismatchedClosers(t *testing.T) {

	cv.Convey(`A closer of the wrong kind, or with no opener at all, should be a parse error`, t, func() {

		for _, src := range []string{"(1 2]", "[1 2)", "{:a 1]", ")", "]", "}"} {
			_, err := readString(t, src)
			cv.So(err, cv.ShouldNotBeNil)
			_, isParse := err.(*ParseError)
			cv.So(isParse, cv.ShouldBeTrue)
		}
	})
}

func Test015ParserChecksHashmapShape(t *testing.T) {

	cv.Convey(`Hashmap keys must be strings or keywords, and every key needs a value`, t, func() {

		_, err := readString(t, "{1 2}")
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(err.Error(), cv.ShouldEqual, "hashmap key must be string or keyword, got integer")

		_, err = readString(t, "{:a}")
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(err.Error(), cv.ShouldEqual, "last key in hashmap lacks value")

		_, err = readString(t, `{:a 1 "b"}`)
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(err.Error(), cv.ShouldEqual, "last key in hashmap lacks value")
	})
}

func Test016ParserDrainsMultipleForms(t *testing.T) {

	cv.Convey(`ParseTokens should return every top level form on the input`, t, func() {

		env := NewEnv(nil)
		parser := env.NewParser()
		parser.ResetAddNewInput(strings.NewReader("1 (+ 2 3) [4] ; done"))

		forms, err := parser.ParseTokens()
		cv.So(err, cv.ShouldBeNil)
		cv.So(len(forms), cv.ShouldEqual, 3)
		cv.So(forms[0].SexpString(nil), cv.ShouldEqual, "1")
		cv.So(forms[1].SexpString(nil), cv.ShouldEqual, "(+ 2 3)")
		cv.So(forms[2].SexpString(nil), cv.ShouldEqual, "[4]")
	})

	cv.Convey(`Empty input should yield no forms and no error`, t, func() {

		env := NewEnv(nil)
		parser := env.NewParser()
		parser.ResetAddNewInput(strings.NewReader("   ; only a comment\n"))

		forms, err := parser.ParseTokens()
		cv.So(err, cv.ShouldBeNil)
		cv.So(len(forms), cv.ShouldEqual, 0)
	})
}
