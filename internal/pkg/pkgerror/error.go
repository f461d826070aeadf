package pkgerror

import "errors"

type Code int

const (
	CodeInternal Code = iota
	CodeInvalidInput
	CodeNotFound
)

type Type int

const (
	TypeServer Type = iota
	TypeBusiness
)

type Error struct {
	msg  string
	code Code
	typ  Type
	err  error
}

func NewBusiness(msg string, code Code) *Error {
	return &Error{msg: msg, code: code, typ: TypeBusiness}
}

func NewServer(err error) *Error {
	return &Error{msg: "internal server error", code: CodeInternal, typ: TypeServer, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Msg() string {
	return e.msg
}

func (e *Error) Code() Code {
	return e.code
}

func (e *Error) Type() Type {
	return e.typ
}

func (e *Error) Unwrap() error {
	return e.err
}

// As returns the *Error in err's chain, or a server error wrapping err.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewServer(err)
}
