package weft

import "fmt"

// Each error kind in spec.md §7 gets its own type, the way the teacher
// distinguishes progError/storError/codeError/memLimitError — so callers
// can errors.As() to a specific kind instead of string-matching.

type StackUnderflowError struct{ Stack string }

func (e StackUnderflowError) Error() string { return fmt.Sprintf("%s stack underflow", e.Stack) }

type ReturnStackUnderflowError struct{}

func (ReturnStackUnderflowError) Error() string { return "return stack underflow" }

type CompilationStackUnderflowError struct{ Word string }

func (e CompilationStackUnderflowError) Error() string {
	return fmt.Sprintf("%q without a matching opener", e.Word)
}

type UnknownWordError struct{ Token string }

func (e UnknownWordError) Error() string { return fmt.Sprintf("unknown word %q", e.Token) }

type BadBranchError struct{ Got Value }

func (e BadBranchError) Error() string { return fmt.Sprintf("branch target is not a number: %v", e.Got) }

type BadStackForZeroBranchError struct{ Got Value }

func (e BadStackForZeroBranchError) Error() string {
	return fmt.Sprintf("0branch needs a number on the stack, got %v", e.Got)
}

type BadStackFrameError struct{ A, B Value }

func (e BadStackFrameError) Error() string {
	return fmt.Sprintf("-stackFrame needs two same-entry cells, got %v and %v", e.A, e.B)
}

type CloneNonArrayError struct{ Got Value }

func (e CloneNonArrayError) Error() string { return fmt.Sprintf("clone of non-array %v", e.Got) }

type EachNeedsArrayError struct{ Got Value }

func (e EachNeedsArrayError) Error() string { return fmt.Sprintf("each needs an array, got %v", e.Got) }

type CompileNowNotPrimitiveError struct{ Token string }

func (e CompileNowNotPrimitiveError) Error() string {
	return fmt.Sprintf("compileNow: target %q is not a literal primitive", e.Token)
}

type UncallableCalledError struct{ Name string }

func (e UncallableCalledError) Error() string {
	return fmt.Sprintf("uncallable placeholder %q was invoked", e.Name)
}

type UserThrowError struct{ Message string }

func (e UserThrowError) Error() string { return e.Message }

// haltError wraps an error with a "halted:" prefix and Unwrap() support.
// Context.halt does not use it: TerminalErr returns the recorded error
// itself, unwrapped.
type haltError struct{ error }

func (e haltError) Error() string {
	if e.error != nil {
		return fmt.Sprintf("halted: %v", e.error)
	}
	return "halted"
}
func (e haltError) Unwrap() error { return e.error }
