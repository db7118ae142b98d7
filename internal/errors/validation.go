package errors

// Diagnostic messages for the three source-validation failures. The wording
// is stable: callers and tests match on these strings exactly.
const (
	MsgReceiverParam = "test fn cannot take a receiver"
	MsgDuplicateTest = "multiple #[test] attributes were supplied"
	MsgNotAsync      = "test fn must be async"
)

// NewReceiverParamError reports a property test declared as a method.
func NewReceiverParamError(loc SourceLocation) *BaseError {
	return New(ValidationErrorCode, MsgReceiverParam).
		WithLocation(loc).
		WithSuggestion("declare the test as a package-level function and call the method inside it")
}

// NewDuplicateTestError reports a function that already carries a test
// registration of its own.
func NewDuplicateTestError(loc SourceLocation) *BaseError {
	return New(ValidationErrorCode, MsgDuplicateTest).
		WithLocation(loc).
		WithSuggestion("remove the extra marker; the generated wrapper registers with go test itself")
}

// NewNotAsyncError reports a function that is not declared asynchronously.
func NewNotAsyncError(loc SourceLocation) *BaseError {
	return New(ValidationErrorCode, MsgNotAsync).
		WithLocation(loc).
		WithSuggestion("return a receivable channel (<-chan T) so the wrapper can drive the function to completion")
}
