// Package views embeds the console's HTML templates.
package views

import (
	"embed"
	"io/fs"
	"net/http"

	"go-fraud-console/internal/shell"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templates embed.FS

// NewEngine returns the fiber view engine over the embedded templates.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(shell.Funcs())
	return engine
}
