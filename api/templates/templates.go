package templates

import (
	"embed"
	"html/template"
)

//go:embed *.tmpl
var files embed.FS

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// Load parses the embedded presenter templates. Pages are addressed by file name.
func Load() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(files, "*.tmpl"))
}
