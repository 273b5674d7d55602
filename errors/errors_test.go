package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf("error: %s %d", "test", 42)
	require.NotNil(t, err)
	assert.Equal(t, "error: test 42", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapf(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "wrapped: %d", 42)

	assert.Contains(t, wrapped.Error(), "wrapped: 42")
	assert.Contains(t, wrapped.Error(), "original")
}

func TestIs(t *testing.T) {
	err1 := New("error 1")
	err2 := New("error 2")
	wrapped := Wrap(err1, "wrapped")

	assert.True(t, Is(wrapped, err1))
	assert.False(t, Is(wrapped, err2))
	assert.False(t, Is(nil, err1))
}

type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}

func TestAs(t *testing.T) {
	original := &customError{msg: "custom"}
	wrapped := Wrap(original, "wrapped")

	var target *customError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "custom", target.msg)
}

func TestWithHint(t *testing.T) {
	err := New("error")
	withHint := WithHint(err, "try this fix")

	hints := GetAllHints(withHint)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestWithDetail(t *testing.T) {
	err := New("error")
	withDetail := WithDetail(err, "detailed information")

	details := GetAllDetails(withDetail)
	require.Len(t, details, 1)
	assert.Equal(t, "detailed information", details[0])
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	// Format with stack trace
	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func TestUnwrapAll(t *testing.T) {
	err1 := New("base")
	err2 := Wrap(err1, "middle")
	err3 := Wrap(err2, "top")

	all := UnwrapAll(err3)
	assert.NotEmpty(t, all)
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
}

func TestErrorChaining(t *testing.T) {
	base := New("base error")

	err := Wrap(base, "layer 1")
	err = WithHint(err, "helpful hint")
	err = WithDetail(err, "detailed info")
	err = Wrap(err, "layer 2")

	// Should preserve all context
	assert.True(t, Is(err, base))
	assert.Contains(t, err.Error(), "layer 2")
	assert.Contains(t, err.Error(), "layer 1")
	assert.Contains(t, err.Error(), "base error")

	// Hints and details should be accessible
	hints := GetAllHints(err)
	assert.Contains(t, hints, "helpful hint")

	details := GetAllDetails(err)
	assert.Contains(t, details, "detailed info")
}

func ExampleNew() {
	err := New("something went wrong")
	fmt.Println(err)
	// Output: something went wrong
}

func ExampleWrap() {
	baseErr := New("unexpected end of document")
	err := Wrap(baseErr, "failed to parse enums.yaml")
	fmt.Println(err)
	// Output: failed to parse enums.yaml: unexpected end of document
}

func ExampleWithHint() {
	err := New("definitions file missing")
	err = WithHint(err, "check paths.definitions_root in schemagen.toml")

	hints := GetAllHints(err)
	fmt.Println(hints[0])
	// Output: check paths.definitions_root in schemagen.toml
}

type parentError struct {
	parent string
}

func (e *parentError) Error() string { return "unknown parent " + e.parent }
func (e *parentError) Unwrap() error { return ErrUnknownParent }

func TestSentinelClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		load       bool
		validation bool
		render     bool
	}{
		{"nil", nil, false, false, false},
		{"load", Wrap(ErrLoad, "enums.yaml"), true, false, false},
		{"schema", Wrapf(ErrSchema, "entry %q", "Color"), true, false, false},
		{"unknown parent", &parentError{parent: "Base"}, false, true, false},
		{"cycle", Wrap(ErrCyclicInheritance, "A -> B -> A"), false, true, false},
		{"duplicate", Wrap(ErrDuplicateMember, "id"), false, true, false},
		{"descriptor", Wrap(ErrInvalidDescriptor, "typo"), false, true, false},
		{"render", Wrap(ErrRender, "GColorEnum.h"), false, false, true},
		{"unrelated", New("boom"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.load, IsLoadError(tt.err))
			assert.Equal(t, tt.validation, IsValidationError(tt.err))
			assert.Equal(t, tt.render, IsRenderError(tt.err))
		})
	}
}

func TestSentinelSurvivesWrapping(t *testing.T) {
	err := Wrap(&parentError{parent: "Base"}, "validate Derived")
	err = Wrap(err, "generate messages")

	assert.True(t, Is(err, ErrUnknownParent))

	var target *parentError
	require.True(t, As(err, &target))
	assert.Equal(t, "Base", target.parent)
}
