package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/blogicum/core/internal/middleware"
	"github.com/blogicum/core/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// emptyValueDisplay is shown wherever an optional field has no value.
const emptyValueDisplay = "Не задано"

// Renderer executes embedded page templates against a shared base layout.
type Renderer struct {
	pages  map[string]*template.Template
	logger *zap.Logger
}

var funcs = template.FuncMap{
	// display applies the per-field default for empty optional values.
	"display": func(s string) string {
		if s == "" {
			return emptyValueDisplay
		}
		return s
	},
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return emptyValueDisplay
		}
		return t.Format("02.01.2006 15:04")
	},
	"markdown": Markdown,
}

// New parses every page template together with the base layout.
func New(logger *zap.Logger) (*Renderer, error) {
	names, err := fs.Glob(web.Templates, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		page := path.Base(name)
		t, err := template.New(page).Funcs(funcs).ParseFS(web.Templates, "templates/base.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		pages[page] = t
	}
	return &Renderer{pages: pages, logger: logger}, nil
}

// HTML renders a page into the base layout. CurrentUser, CSRFToken and Path
// are injected so every form and header can rely on them.
func (r *Renderer) HTML(c *gin.Context, status int, page string, data gin.H) {
	t, ok := r.pages[page]
	if !ok {
		r.ServerError(c, fmt.Errorf("unknown template %q", page))
		return
	}

	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = middleware.CurrentUser(c)
	data["CSRFToken"] = middleware.CSRFToken(c)
	data["CSRFField"] = middleware.CSRFField
	data["Path"] = c.Request.URL.Path

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		r.ServerError(c, err)
		return
	}

	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// NotFound renders the 404 page.
func (r *Renderer) NotFound(c *gin.Context) {
	r.HTML(c, http.StatusNotFound, "404.html", nil)
	c.Abort()
}

// Forbidden renders the 403 page (CSRF and access failures).
func (r *Renderer) Forbidden(c *gin.Context) {
	r.HTML(c, http.StatusForbidden, "403.html", nil)
	c.Abort()
}

// ServerError logs the fault and renders the generic 500 page.
func (r *Renderer) ServerError(c *gin.Context, err error) {
	if r.logger != nil {
		r.logger.Error("server error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	// The 500 page deliberately avoids the normal render path: if templates
	// themselves are broken we still answer.
	c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", serverErrorPage)
	c.Abort()
}

var serverErrorPage = []byte(`<!doctype html>
<html lang="ru">
<head><meta charset="utf-8"><title>Ошибка сервера</title></head>
<body><h1>500</h1><p>Что-то пошло не так. Попробуйте позже.</p></body>
</html>
`)
