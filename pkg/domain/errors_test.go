package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidInput(t *testing.T) {
	t.Run("ErrorWithoutFields", func(t *testing.T) {
		err := &InvalidInput{Message: "bad request"}
		assert.Equal(t, "bad request", err.Error())
	})

	t.Run("ErrorListsFieldsSorted", func(t *testing.T) {
		err := &InvalidInput{
			Message: "validation failed",
			Fields: map[string]FieldError{
				"b": {Message: "too long"},
				"a": {Message: "required"},
			},
		}
		assert.Equal(t, "validation failed; a: required; b: too long", err.Error())
	})

	t.Run("FieldLookup", func(t *testing.T) {
		err := &InvalidInput{Fields: map[string]FieldError{
			"name": {Message: "taken", Value: "ada"},
		}}
		assert.Equal(t, "taken", err.Field("name").Message)
		assert.Equal(t, FieldError{}, err.Field("absent"))

		var nilErr *InvalidInput
		assert.Equal(t, FieldError{}, nilErr.Field("any"))
	})
}

func TestAsInvalidInput(t *testing.T) {
	t.Run("Direct", func(t *testing.T) {
		inv, ok := AsInvalidInput(&InvalidInput{Message: "x"})
		require.True(t, ok)
		assert.Equal(t, "x", inv.Message)
	})

	t.Run("Wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("model failed: %w", &InvalidInput{Message: "x"})
		inv, ok := AsInvalidInput(wrapped)
		require.True(t, ok)
		assert.Equal(t, "x", inv.Message)
	})

	t.Run("OtherError", func(t *testing.T) {
		_, ok := AsInvalidInput(assert.AnError)
		assert.False(t, ok)
	})
}

func TestControl(t *testing.T) {
	t.Run("RedirectionIsControl", func(t *testing.T) {
		c, ok := AsControl(Redirection{Path: "/login"})
		require.True(t, ok)
		assert.Equal(t, "redirection", c.ControlName())
	})

	t.Run("PlainValuesAreNot", func(t *testing.T) {
		_, ok := AsControl("just a string")
		assert.False(t, ok)
		_, ok = AsControl(nil)
		assert.False(t, ok)
	})
}

func TestSuperformats(t *testing.T) {
	assert.Equal(t, "application/json", MimetypeForSuperformat("json"))
	assert.Equal(t, "text/x-cmd", MimetypeForSuperformat("cmd"))
	assert.Equal(t, "", MimetypeForSuperformat("exe"))
	assert.True(t, KnownSuperformat("html"))
	assert.False(t, KnownSuperformat("html5"))
}

func TestRequest(t *testing.T) {
	t.Run("Value", func(t *testing.T) {
		req := &Request{Data: map[string]any{"k": "v"}}
		v, ok := req.Value("k")
		require.True(t, ok)
		assert.Equal(t, "v", v)

		_, ok = req.Value("absent")
		assert.False(t, ok)

		var nilReq *Request
		_, ok = nilReq.Value("k")
		assert.False(t, ok)
	})

	t.Run("CloneIsolatesData", func(t *testing.T) {
		req := &Request{Invocation: "/x", Data: map[string]any{"k": "v"}}
		clone := req.Clone()
		clone.Data["k"] = "changed"

		assert.Equal(t, "v", req.Data["k"])
		assert.Equal(t, "/x", clone.Invocation)
	})
}
