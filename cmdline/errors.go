package cmdline

import "fmt"

// ErrorType represents the category of a parse failure.
// Categories drive exit-code mapping (via ExitCodeManager).
type ErrorType string

const (
	ErrorTypeUnknownOption    ErrorType = "unknown_option"
	ErrorTypeMissingValue     ErrorType = "missing_value"
	ErrorTypeInvalidValue     ErrorType = "invalid_value"
	ErrorTypeTooFewArguments  ErrorType = "too_few_arguments"
	ErrorTypeTooManyArguments ErrorType = "too_many_arguments"
)

// ParseError is returned by Parse. Options and arguments matched before
// the failing token keep the values they received.
type ParseError struct {
	Type       ErrorType
	Message    string
	Option     string // option as written on the command line, e.g. "--int" or "-i"
	Argument   string // positional argument name
	Token      string // offending token or value
	Position   int    // character index inside a short option cluster
	Suggestion string // closest long option name for unknown options
	Err        error  // underlying *ConversionError, if any
}

func (e *ParseError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause
func (e *ParseError) Unwrap() error {
	return e.Err
}

func newUnknownLongError(name, suggestion string) *ParseError {
	return &ParseError{
		Type:       ErrorTypeUnknownOption,
		Message:    "unknown option: --" + name,
		Option:     "--" + name,
		Token:      name,
		Suggestion: suggestion,
	}
}

func newUnknownShortError(r rune, token string, position int) *ParseError {
	return &ParseError{
		Type:     ErrorTypeUnknownOption,
		Message:  fmt.Sprintf("unknown option: -%c (character %d of %q)", r, position, token),
		Option:   "-" + string(r),
		Token:    token,
		Position: position,
	}
}

func newMissingValueError(option string) *ParseError {
	return &ParseError{
		Type:    ErrorTypeMissingValue,
		Message: "option requires a value: " + option,
		Option:  option,
	}
}

func newUnexpectedValueError(option, value string) *ParseError {
	return &ParseError{
		Type:    ErrorTypeMissingValue,
		Message: "option does not take a value: " + option + "=" + value,
		Option:  option,
		Token:   value,
	}
}

func newOptionValueError(option, token string, err error) *ParseError {
	return &ParseError{
		Type:    ErrorTypeInvalidValue,
		Message: fmt.Sprintf("invalid value for option %s: %v", option, err),
		Option:  option,
		Token:   token,
		Err:     err,
	}
}

func newArgumentValueError(name, token string, err error) *ParseError {
	return &ParseError{
		Type:     ErrorTypeInvalidValue,
		Message:  fmt.Sprintf("invalid value for argument '%s': %v", name, err),
		Argument: name,
		Token:    token,
		Err:      err,
	}
}

// DefinitionKind represents the category of a declaration mistake.
type DefinitionKind string

const (
	DefinitionDuplicateShort    DefinitionKind = "duplicate_short"
	DefinitionDuplicateLong     DefinitionKind = "duplicate_long"
	DefinitionInvalidAlias      DefinitionKind = "invalid_alias"
	DefinitionAlreadyRegistered DefinitionKind = "already_registered"
	DefinitionArgumentOrder     DefinitionKind = "argument_order"
	DefinitionListNotLast       DefinitionKind = "list_not_last"
	DefinitionNoConverter       DefinitionKind = "no_converter"
)

// DefinitionError is returned when options, arguments or groups are
// declared inconsistently. It signals a programming error and is never
// produced by Parse.
type DefinitionError struct {
	Kind    DefinitionKind
	Name    string // alias, argument or group name involved
	Message string
}

func (e *DefinitionError) Error() string {
	return e.Message
}

func newDefinitionError(kind DefinitionKind, name, format string, args ...any) *DefinitionError {
	return &DefinitionError{Kind: kind, Name: name, Message: fmt.Sprintf(format, args...)}
}
