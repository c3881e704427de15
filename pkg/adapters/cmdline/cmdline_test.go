package cmdline

import (
	"bytes"
	"context"
	"testing"

	"github.com/avral/tessera/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	t.Run("InvocationAndPairs", func(t *testing.T) {
		req := ParseArgs([]string{"blog/5", "--title=Hi", "--draft"})
		assert.Equal(t, "blog/5", req.Invocation)
		assert.Equal(t, map[string]any{"title": "Hi", "draft": "true"}, req.Data)
	})

	t.Run("SpaceSeparatedValues", func(t *testing.T) {
		req := ParseArgs([]string{"echo", "--message", "hello world"})
		assert.Equal(t, "echo", req.Invocation)
		assert.Equal(t, map[string]any{"message": "hello world"}, req.Data)
	})

	t.Run("NoInvocationDefaultsToRoot", func(t *testing.T) {
		req := ParseArgs([]string{"--verbose"})
		assert.Equal(t, "/", req.Invocation)
		assert.Equal(t, map[string]any{"verbose": "true"}, req.Data)
	})

	t.Run("Empty", func(t *testing.T) {
		req := ParseArgs(nil)
		assert.Equal(t, "/", req.Invocation)
		assert.Empty(t, req.Data)
	})

	t.Run("AdjacentFlags", func(t *testing.T) {
		req := ParseArgs([]string{"x", "--a", "--b=2"})
		assert.Equal(t, map[string]any{"a": "true", "b": "2"}, req.Data)
	})
}

func TestController(t *testing.T) {
	c := NewController()
	assert.Equal(t, "cmd", c.Tag())
	assert.Equal(t, "cmd", c.Family())
	assert.Equal(t, "text/x-cmd", c.DefaultMimetype())
	assert.Equal(t, "", c.MimetypeOverride(nil))

	t.Run("UnknownPrimitive", func(t *testing.T) {
		_, err := c.Primitive(context.Background(), "NOPE")
		assert.ErrorIs(t, err, domain.ErrUnknownPrimitive)
	})

	t.Run("ConfiguredPrimitive", func(t *testing.T) {
		c := NewController(WithPrimitive(domain.LoggedInUser, func() (any, error) {
			return "ada", nil
		}))
		v, err := c.Primitive(context.Background(), domain.LoggedInUser.String())
		require.NoError(t, err)
		assert.Equal(t, "ada", v)
	})
}

func TestEmitter(t *testing.T) {
	newEmitter := func() (*Emitter, *bytes.Buffer, *bytes.Buffer) {
		var out, errOut bytes.Buffer
		return &Emitter{Stdout: &out, Stderr: &errOut, ForcePlain: true}, &out, &errOut
	}

	t.Run("String", func(t *testing.T) {
		e, out, _ := newEmitter()
		require.NoError(t, e.Emit(&domain.Response{Body: "hello"}))
		assert.Equal(t, "hello\n", out.String())
	})

	t.Run("Bytes", func(t *testing.T) {
		e, out, _ := newEmitter()
		require.NoError(t, e.Emit(&domain.Response{Body: []byte("raw")}))
		assert.Equal(t, "raw", out.String())
	})

	t.Run("StructuredBodyAsJSON", func(t *testing.T) {
		e, out, _ := newEmitter()
		require.NoError(t, e.Emit(&domain.Response{Body: map[string]any{"a": 1}}))
		assert.JSONEq(t, `{"a":1}`, out.String())
	})

	t.Run("RedirectionPrintsTarget", func(t *testing.T) {
		e, out, _ := newEmitter()
		require.NoError(t, e.Emit(&domain.Response{Body: domain.Redirection{Path: "/blog/5"}}))
		assert.Equal(t, "/blog/5\n", out.String())
	})

	t.Run("MarkdownStaysPlainOffTerminal", func(t *testing.T) {
		e, out, _ := newEmitter()
		require.NoError(t, e.Emit(&domain.Response{Body: "# Title", Mimetype: "text/markdown"}))
		assert.Equal(t, "# Title\n", out.String())
	})

	t.Run("ErrorGoesToStderr", func(t *testing.T) {
		e, out, errOut := newEmitter()
		e.EmitError(assert.AnError)
		assert.Empty(t, out.String())
		assert.Contains(t, errOut.String(), assert.AnError.Error())
	})
}
