package view

import (
	"html/template"
	"strings"

	"github.com/avral/tessera/pkg/domain"
)

// Template adapts an html/template into a renderer function. The model
// result is exposed to the template under varName and validation errors
// under "errors". Use it with Renders or Override:
//
//	view.MustExtend(view.Basic(),
//		view.Renders(view.Template(tmpl, "blog", "text/html"), "text/html"))
func Template(tmpl *template.Template, varName, mimetype string) func(any, *domain.InvalidInput) (any, error) {
	return func(result any, errs *domain.InvalidInput) (any, error) {
		var sb strings.Builder
		data := map[string]any{
			varName:  result,
			"errors": errs,
		}
		if err := tmpl.Execute(&sb, data); err != nil {
			return nil, err
		}
		return Rendered{Body: sb.String(), Mimetype: mimetype}, nil
	}
}
