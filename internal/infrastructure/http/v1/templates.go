package v1

import (
	"embed"
	"html/template"

	"knkadmin/internal/core/record"
	"knkadmin/internal/infrastructure/http/v1/handlers"
	"knkadmin/internal/ui/form"
)

//go:embed templates/*.html
var templateFS embed.FS

// formScope is the data of the "fields" template: a form view and its input name prefix.
type formScope struct {
	Prefix string
	Form   form.View
}

var templateFuncs = template.FuncMap{
	"text": record.Stringify,
	"inputName": handlers.InputName,
	"contains": func(list []string, s string) bool {
		for _, item := range list {
			if item == s {
				return true
			}
		}
		return false
	},
	"scope": func(prefix string, v any) formScope {
		switch t := v.(type) {
		case form.View:
			return formScope{Prefix: prefix, Form: t}
		case *form.View:
			if t != nil {
				return formScope{Prefix: prefix, Form: *t}
			}
		}
		return formScope{Prefix: prefix}
	},
}

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("pages").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}
