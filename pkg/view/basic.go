package view

import (
	"encoding/json"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/avral/tessera/pkg/domain"
)

var genericHTML = template.Must(template.New("generic").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<table>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
</body>
</html>
`))

// Basic returns a view with generic JSON, HTML and plain-text renderers
// able to display any model result. Applications typically Extend it with
// their own renderers.
func Basic() *View {
	return MustNew(
		Renders(renderJSON, "application/json"),
		Renders(renderHTML, "text/html"),
		Renders(renderText, "text/plain", "text/x-cmd", "text/x-irc"),
	)
}

// ForceJSON returns a view rendering every result as JSON regardless of
// the requested mimetype.
func ForceJSON() *View {
	return MustNew(Renders(func(result any) (any, error) {
		b, err := json.Marshal(result)
		if err != nil {
			return nil, err
		}
		return Rendered{Body: string(b), Mimetype: "application/json"}, nil
	}, "*/*"))
}

// ForceText returns a view rendering every result as plain text.
func ForceText() *View {
	return MustNew(Renders(func(result any) any {
		return Rendered{Body: textify(result), Mimetype: "text/plain"}
	}, "*/*"))
}

// URLFollower renders programs whose model returns a URL: HTML clients get
// redirected, command-line clients get the URL printed.
func URLFollower() *View {
	return MustNew(
		Renders(func(result any) any {
			return domain.Redirection{Path: fmt.Sprint(result)}
		}, "text/html"),
		Renders(func(result any) any {
			return fmt.Sprint(result)
		}, "text/x-cmd", "cmd"),
	)
}

func renderJSON(result any, _ *domain.InvalidInput) (any, error) {
	b, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return Rendered{Body: string(b), Mimetype: "application/json"}, nil
}

func renderHTML(result any, _ *domain.InvalidInput) (any, error) {
	data := struct {
		Title string
		Rows  [][]string
	}{Title: fmt.Sprintf("%T", result)}

	switch r := result.(type) {
	case nil:
		data.Rows = [][]string{{"None"}}
	case string:
		data.Rows = [][]string{{r}}
	case map[string]any:
		for _, k := range sortedKeys(r) {
			data.Rows = append(data.Rows, []string{k, fmt.Sprint(r[k])})
		}
	case []any:
		for _, item := range r {
			data.Rows = append(data.Rows, []string{textify(item)})
		}
	case []string:
		for _, item := range r {
			data.Rows = append(data.Rows, []string{item})
		}
	default:
		data.Rows = [][]string{{fmt.Sprint(result)}}
	}

	var sb strings.Builder
	if err := genericHTML.Execute(&sb, data); err != nil {
		return nil, err
	}
	return Rendered{Body: sb.String(), Mimetype: "text/html"}, nil
}

func renderText(result any, _ *domain.InvalidInput) (any, error) {
	return textify(result), nil
}

// textify flattens any value into "key - value" lines or plain strings.
func textify(result any) string {
	switch r := result.(type) {
	case nil:
		return ""
	case string:
		return r
	case map[string]any:
		lines := make([]string, 0, len(r))
		for _, k := range sortedKeys(r) {
			lines = append(lines, fmt.Sprintf("%s - %v", k, r[k]))
		}
		return strings.Join(lines, "\n")
	case []any:
		lines := make([]string, 0, len(r))
		for _, item := range r {
			lines = append(lines, textify(item))
		}
		return strings.Join(lines, "\n")
	case []string:
		return strings.Join(r, "\n")
	default:
		return fmt.Sprint(result)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
