package manifest

import (
	"context"
	"testing"

	"github.com/avral/tessera/pkg/domain"
	"github.com/avral/tessera/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedProgram(name string, controllers ...string) *domain.Program {
	return domain.MustProgram(domain.ProgramConfig{
		Name: name,
		Model: func(ctx context.Context, args domain.Args) (any, error) {
			return name, nil
		},
		View:        view.Basic(),
		Controllers: controllers,
	})
}

func blogManifest(t *testing.T) *Node {
	t.Helper()
	n, err := New(map[string]Entry{
		"":     Program(namedProgram("root")),
		"blog": Program(namedProgram("blog")),
		"admin": MustNew(map[string]Entry{
			"":     Program(namedProgram("admin-root")),
			"edit": Program(namedProgram("edit")),
		}),
		"weblog": Alias("blog"),
	})
	require.NoError(t, err)
	return n
}

func TestNew(t *testing.T) {
	t.Run("RejectsInvalidKey", func(t *testing.T) {
		_, err := New(map[string]Entry{
			"has space": Program(namedProgram("p")),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidManifestKey)
	})

	t.Run("RejectsSlashInKey", func(t *testing.T) {
		_, err := New(map[string]Entry{
			"a/b": Program(namedProgram("p")),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidManifestKey)
	})

	t.Run("RejectsNilEntry", func(t *testing.T) {
		_, err := New(map[string]Entry{"x": nil})
		assert.ErrorIs(t, err, domain.ErrInvalidManifestValue)
	})

	t.Run("RejectsDanglingAlias", func(t *testing.T) {
		_, err := New(map[string]Entry{"x": Alias("missing")})
		assert.ErrorIs(t, err, domain.ErrInvalidManifestValue)
	})

	t.Run("RejectsAliasCycle", func(t *testing.T) {
		_, err := New(map[string]Entry{
			"a": Alias("b"),
			"b": Alias("a"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidManifestValue)
	})

	t.Run("AllowsAliasChain", func(t *testing.T) {
		n, err := New(map[string]Entry{
			"blog": Program(namedProgram("blog")),
			"b":    Alias("blog"),
			"w":    Alias("b"),
		})
		require.NoError(t, err)

		match, err := n.ParseInvocation("/w", "cmd")
		require.NoError(t, err)
		assert.Equal(t, "blog", match.Program.Name())
	})
}

func TestParseInvocation(t *testing.T) {
	n := blogManifest(t)

	t.Run("ExactMatch", func(t *testing.T) {
		match, err := n.ParseInvocation("/blog", "http-get")
		require.NoError(t, err)
		assert.Equal(t, "blog", match.Program.Name())
		assert.Equal(t, "/blog", match.Path)
		assert.Empty(t, match.Args)
	})

	t.Run("TrailingSegmentsBecomeArgs", func(t *testing.T) {
		match, err := n.ParseInvocation("/blog/5/draft", "http-get")
		require.NoError(t, err)
		assert.Equal(t, "blog", match.Program.Name())
		assert.Equal(t, []string{"5", "draft"}, match.Args)
	})

	t.Run("LongestPrefixWins", func(t *testing.T) {
		match, err := n.ParseInvocation("/admin/edit/5", "http-get")
		require.NoError(t, err)
		assert.Equal(t, "edit", match.Program.Name())
		assert.Equal(t, []string{"5"}, match.Args)
	})

	t.Run("NamespaceRootCatchesShorterPath", func(t *testing.T) {
		match, err := n.ParseInvocation("/admin/unknown", "http-get")
		require.NoError(t, err)
		assert.Equal(t, "admin-root", match.Program.Name())
		assert.Equal(t, []string{"unknown"}, match.Args)
	})

	t.Run("RootProgramIsUltimateFallback", func(t *testing.T) {
		match, err := n.ParseInvocation("/", "http-get")
		require.NoError(t, err)
		assert.Equal(t, "root", match.Program.Name())
	})

	t.Run("AliasResolvesToTarget", func(t *testing.T) {
		match, err := n.ParseInvocation("/weblog/5", "http-get")
		require.NoError(t, err)
		assert.Equal(t, "blog", match.Program.Name())
		assert.Equal(t, []string{"5"}, match.Args)
	})

	t.Run("EquivalentSpellings", func(t *testing.T) {
		for _, invocation := range []string{"/blog/5", "blog/5", "/blog/5/", "blog/5/"} {
			match, err := n.ParseInvocation(invocation, "http-get")
			require.NoError(t, err, invocation)
			assert.Equal(t, "blog", match.Program.Name(), invocation)
			assert.Equal(t, []string{"5"}, match.Args, invocation)
		}
	})

	t.Run("NoMatchWithoutRoot", func(t *testing.T) {
		bare, err := New(map[string]Entry{
			"blog": Program(namedProgram("blog")),
		})
		require.NoError(t, err)

		_, err = bare.ParseInvocation("/nope", "http-get")
		assert.ErrorIs(t, err, domain.ErrProgramNotFound)
	})
}

func TestParseInvocationSuperformat(t *testing.T) {
	n := blogManifest(t)

	t.Run("TerminalSegmentExtension", func(t *testing.T) {
		match, err := n.ParseInvocation("/blog.json", "http-get")
		require.NoError(t, err)
		assert.Equal(t, "blog", match.Program.Name())
		assert.Equal(t, "json", match.Superformat)
		assert.Equal(t, "application/json", match.SuperformatMime)
		assert.Empty(t, match.Args)
	})

	t.Run("UnknownExtensionIsNotStripped", func(t *testing.T) {
		// ".exe" is no renderer name, so /blog.exe falls through to the
		// root program with "blog.exe" as an argument.
		match, err := n.ParseInvocation("/blog.exe", "http-get")
		require.NoError(t, err)
		assert.Equal(t, "root", match.Program.Name())
		assert.Equal(t, []string{"blog.exe"}, match.Args)
		assert.Empty(t, match.Superformat)
	})

	t.Run("DottedMiddleSegmentIsAnArgument", func(t *testing.T) {
		match, err := n.ParseInvocation("/blog/file.json", "http-get")
		require.NoError(t, err)
		assert.Equal(t, "blog", match.Program.Name())
		assert.Equal(t, []string{"file.json"}, match.Args)
		assert.Empty(t, match.Superformat)
	})
}

func TestParseInvocationControllerLists(t *testing.T) {
	n, err := New(map[string]Entry{
		"page": List(
			namedProgram("page-http", "http-get"),
			namedProgram("page-cmd", "cmd"),
		),
	})
	require.NoError(t, err)

	t.Run("PicksFirstServingProgram", func(t *testing.T) {
		match, err := n.ParseInvocation("/page", "http-get")
		require.NoError(t, err)
		assert.Equal(t, "page-http", match.Program.Name())

		match, err = n.ParseInvocation("/page", "cmd")
		require.NoError(t, err)
		assert.Equal(t, "page-cmd", match.Program.Name())
	})

	t.Run("NotFoundForUnservedController", func(t *testing.T) {
		_, err := n.ParseInvocation("/page", "irc")
		assert.ErrorIs(t, err, domain.ErrProgramNotFound)
	})
}

func TestURLs(t *testing.T) {
	n := blogManifest(t)

	t.Run("EnumeratesSorted", func(t *testing.T) {
		assert.Equal(t, []string{"/", "/admin", "/admin/edit", "/blog", "/weblog"}, n.URLs("http-get"))
	})

	t.Run("FiltersByControllerTag", func(t *testing.T) {
		n, err := New(map[string]Entry{
			"web":  Program(namedProgram("web", "http-get")),
			"term": Program(namedProgram("term", "cmd")),
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"/web"}, n.URLs("http-get"))
		assert.Equal(t, []string{"/term"}, n.URLs("cmd"))
	})
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":         "/",
		"/":        "/",
		"blog":     "/blog",
		"/blog":    "/blog",
		"/blog/":   "/blog",
		"blog/5/":  "/blog/5",
		"/blog/5/": "/blog/5",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestMustNew(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(map[string]Entry{"bad key": Program(namedProgram("p"))})
	})
}
