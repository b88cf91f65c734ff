// Package views embeds the HTML templates and builds the Fiber view engine.
package views

import (
	"embed"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed layouts/*.html partials/*.html *.html
var files embed.FS

// Layout is the template every page renders into.
const Layout = "layouts/main"

func NewEngine() *html.Engine {
	engine := html.NewFileSystem(http.FS(files), ".html")
	engine.AddFunc("datetime", func(t time.Time) string {
		return t.Format("2006-01-02 15:04:05")
	})
	engine.AddFunc("dict", dict)
	return engine
}

// dict builds a map from alternating keys and values so partials can take
// more than one argument.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict needs an even number of arguments, got %d", len(pairs))
	}

	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
