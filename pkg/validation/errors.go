package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// ErrUnsupportedOperation is returned when a document contains an
// operation the schema has no root type for.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// ErrorKind classifies a validation finding.
type ErrorKind int

const (
	InvalidSyntax ErrorKind = iota
	WrongType
	UnknownType
	SubSelectionRequired
	SubSelectionNotAllowed
	InvalidFragmentType
	FieldUndefined
	InlineFragmentTypeConditionInvalid
	FragmentTypeConditionInvalid
	UnknownArgument
	UndefinedFragment
	NonInputTypeOnVariable
	UnusedFragment
	MissingFieldArgument
	MissingDirectiveArgument
	VariableTypeMismatch
	UnknownDirective
	MisplacedDirective
	UndefinedVariable
	UnusedVariable
	FragmentCycle
	FieldsConflict
	LoneAnonymousOperationViolation
	DefaultForNonNullArgument
	BadValueForDefaultArg
)

var errorKindNames = [...]string{
	InvalidSyntax:                      "InvalidSyntax",
	WrongType:                          "WrongType",
	UnknownType:                        "UnknownType",
	SubSelectionRequired:               "SubSelectionRequired",
	SubSelectionNotAllowed:             "SubSelectionNotAllowed",
	InvalidFragmentType:                "InvalidFragmentType",
	FieldUndefined:                     "FieldUndefined",
	InlineFragmentTypeConditionInvalid: "InlineFragmentTypeConditionInvalid",
	FragmentTypeConditionInvalid:       "FragmentTypeConditionInvalid",
	UnknownArgument:                    "UnknownArgument",
	UndefinedFragment:                  "UndefinedFragment",
	NonInputTypeOnVariable:             "NonInputTypeOnVariable",
	UnusedFragment:                     "UnusedFragment",
	MissingFieldArgument:               "MissingFieldArgument",
	MissingDirectiveArgument:           "MissingDirectiveArgument",
	VariableTypeMismatch:               "VariableTypeMismatch",
	UnknownDirective:                   "UnknownDirective",
	MisplacedDirective:                 "MisplacedDirective",
	UndefinedVariable:                  "UndefinedVariable",
	UnusedVariable:                     "UnusedVariable",
	FragmentCycle:                      "FragmentCycle",
	FieldsConflict:                     "FieldsConflict",
	LoneAnonymousOperationViolation:    "LoneAnonymousOperationViolation",
	DefaultForNonNullArgument:          "DefaultForNonNullArgument",
	BadValueForDefaultArg:              "BadValueForDefaultArg",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindNames[k]
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(errorKindNames) {
		return nil, fmt.Errorf("unknown error kind %d", int(k))
	}
	return []byte(errorKindNames[k]), nil
}

func (k *ErrorKind) UnmarshalText(text []byte) error {
	kind, err := ParseErrorKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ParseErrorKind returns the kind with the given name.
func ParseErrorKind(name string) (ErrorKind, error) {
	for k, n := range errorKindNames {
		if n == name {
			return ErrorKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown error kind %q", name)
}

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// ValidationError is a single finding. Values are not modified once
// reported.
type ValidationError struct {
	Kind      ErrorKind  `json:"kind"`
	Message   string     `json:"message"`
	Locations []Location `json:"locations"`
}

// NewError builds a finding located at pos. A nil pos gives no location.
func NewError(kind ErrorKind, pos *ast.Position, message string) ValidationError {
	err := ValidationError{Kind: kind, Message: message, Locations: []Location{}}
	if pos != nil {
		err.Locations = append(err.Locations, Location{Line: pos.Line, Column: pos.Column})
	}
	return err
}

func (e ValidationError) Error() string {
	if len(e.Locations) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	loc := e.Locations[0]
	return fmt.Sprintf("%d:%d: %s: %s", loc.Line, loc.Column, e.Kind, e.Message)
}

// ErrorList is the ordered result of a validation run. It is empty when
// the document is valid.
type ErrorList []ValidationError

func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// OfKind returns the findings of the given kind.
func (l ErrorList) OfKind(kind ErrorKind) ErrorList {
	var out ErrorList
	for _, e := range l {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Collector accumulates the findings of one validation run.
type Collector struct {
	errs ErrorList
}

func (c *Collector) Add(err ValidationError) {
	c.errs = append(c.errs, err)
}

func (c *Collector) Len() int {
	return len(c.errs)
}

// Errors returns a copy of everything collected so far.
func (c *Collector) Errors() ErrorList {
	out := make(ErrorList, len(c.errs))
	copy(out, c.errs)
	return out
}
