package codemodel

import (
	"errors"
	"fmt"
)

// ErrIllegalDeclaration marks programmer errors in code that drives the
// model: inheritance loops, a second varargs parameter, bad identifiers.
// Builders raise it by panicking with a *DeclarationError.
var ErrIllegalDeclaration = errors.New("illegal declaration")

// ErrPrimitive is returned when a primitive type is given where a class
// reference is required.
var ErrPrimitive = errors.New("primitive type is not a class")

type DeclarationError struct {
	Msg string
}

func (e *DeclarationError) Error() string { return "illegal declaration: " + e.Msg }

func (e *DeclarationError) Unwrap() error { return ErrIllegalDeclaration }

func illegalf(format string, args ...any) {
	panic(&DeclarationError{Msg: fmt.Sprintf(format, args...)})
}

// ClassExistsError reports that a class of the requested name is already
// declared. Callers usually recover by using Existing.
type ClassExistsError struct {
	Existing *DefinedClass
}

func (e *ClassExistsError) Error() string {
	return fmt.Sprintf("class %s already exists", e.Existing.FullName())
}

// FieldExistsError reports a second field of the same name in one class.
// The first field is left untouched.
type FieldExistsError struct {
	Existing *FieldVar
}

func (e *FieldExistsError) Error() string {
	return fmt.Sprintf("field %s already exists in %s", e.Existing.Name(), e.Existing.Owner().FullName())
}
