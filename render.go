package garden

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/garden/components"
	"github.com/eringen/garden/content"
	"github.com/eringen/garden/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// Page returns the full document for p within all, using the layout that
// matches the page kind.
func (a *App) Page(p *content.Page, all *content.Collection) templ.Component {
	_, l := a.layoutFor(p)
	return views.Document(a.Shared, l, components.Props{
		Page: p,
		All:  all,
		Cfg:  a.componentConfig(),
	})
}
