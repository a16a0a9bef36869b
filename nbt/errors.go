package nbt

import (
	"errors"
	"fmt"
)

const (
	errCodeOK errCode = iota
	errCodeWrongStartingTag
	errCodeInvalidTag
	errCodeInvalidListType
	errCodeUnexpectedEnd
	errCodeSuddenEnd
)

type errCode int

// errs holds the static, offset-independent message for each error kind.
// [errParse.Error] combines this with the offset and any tag-specific detail.
var errs = [...]error{
	errCodeOK:               nil,
	errCodeWrongStartingTag: errors.New("wrong starting tag"),
	errCodeInvalidTag:       errors.New("invalid tag byte"),
	errCodeInvalidListType:  errors.New("invalid list element type"),
	errCodeUnexpectedEnd:    errors.New("unexpected end tag"),
	errCodeSuddenEnd:        errors.New("sudden end of data"),
}

// errParse is a fatal-to-construction tape parsing error. All five kinds
// named in the error taxonomy (WrongStartingTag, InvalidTag, InvalidListType,
// UnexpectedEnd, SuddenEnd) are represented by this one type, discriminated
// by code; callers that need to distinguish a kind use [errors.Is] against
// the sentinel error returned from [errParse.Unwrap].
type errParse struct {
	code int
	pos  int
	tag  Tag
}

func newErr(code errCode, pos int) *errParse {
	return &errParse{code: int(code), pos: pos}
}

func newErrTag(code errCode, pos int, tag Tag) *errParse {
	return &errParse{code: int(code), pos: pos, tag: tag}
}

// Offset returns the byte offset in the source buffer at which the error was
// detected.
func (e *errParse) Offset() int { return e.pos }

// Unwrap implements error unwrapping via [errors.Unwrap].
func (e *errParse) Unwrap() error { return errs[e.code] }

func (e *errParse) Error() string {
	switch errCode(e.code) {
	case errCodeInvalidTag:
		return fmt.Sprintf("nbt: invalid tag byte %d at offset %d", byte(e.tag), e.pos)
	case errCodeInvalidListType:
		return fmt.Sprintf("nbt: invalid list element type %v at offset %d", e.tag, e.pos)
	case errCodeWrongStartingTag:
		return fmt.Sprintf("nbt: wrong starting tag %v at offset %d, expected Compound", e.tag, e.pos)
	default:
		return fmt.Sprintf("nbt: %v at offset %d", e.Unwrap(), e.pos)
	}
}

// ErrWrongStartingTag is the sentinel matched by the WrongStartingTag error
// kind: the first tape entry was not a Compound.
var ErrWrongStartingTag = errs[errCodeWrongStartingTag]

// ErrInvalidTag is the sentinel matched by the InvalidTag error kind: a tag
// byte outside 0..=12 was encountered.
var ErrInvalidTag = errs[errCodeInvalidTag]

// ErrInvalidListType is the sentinel matched by the InvalidListType error
// kind: a list declared element tag End with a positive length.
var ErrInvalidListType = errs[errCodeInvalidListType]

// ErrUnexpectedEnd is the sentinel matched by the UnexpectedEnd error kind:
// an End tag was read with no open Compound scope.
var ErrUnexpectedEnd = errs[errCodeUnexpectedEnd]

// ErrSuddenEnd is the sentinel matched by the SuddenEnd error kind: the
// input was exhausted while scopes remained open.
var ErrSuddenEnd = errs[errCodeSuddenEnd]
