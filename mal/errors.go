package mal

import "fmt"

// Errors are plain Go error values split into three kinds matching the
// stage that produced them. Every error is recoverable: the REPL prints
// it and reads the next line. There is no separate fatal class.

// LexError reports a malformed token or an unterminated string.
type LexError struct {
	msg string
}

func (e *LexError) Error() string { return e.msg }

func LexErrorf(format string, args ...interface{}) error {
	return &LexError{msg: fmt.Sprintf(format, args...)}
}

// ParseError reports an unterminated or mismatched container, or an
// invalid hashmap shape.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string { return e.msg }

func ParseErrorf(format string, args ...interface{}) error {
	return &ParseError{msg: fmt.Sprintf(format, args...)}
}

// EvalError reports unbound symbols, arity and type violations,
// division by zero, and malformed special-form arguments.
type EvalError struct {
	msg string
}

func (e *EvalError) Error() string { return e.msg }

func EvalErrorf(format string, args ...interface{}) error {
	return &EvalError{msg: fmt.Sprintf(format, args...)}
}

var WrongNargs error = &EvalError{msg: "wrong number of arguments"}
