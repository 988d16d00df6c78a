// Package views assembles full HTML documents from a layout and its
// components, and bundles the stylesheets they declare.
package views

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/garden/components"
	"github.com/eringen/garden/layout"
)

//go:embed assets/base.css
var baseCSS string

// Document renders the complete page for props.Page: head, header, the
// before-body region, the body itself, the after-body region, both sidebars
// and the footer.
func Document(shared layout.SharedLayout, page layout.PageLayout, props components.Props) templ.Component {
	body := components.Content()
	if props.Page != nil && props.Page.IsListPage() {
		body = components.FolderContent()
	}
	lang := "en-US"
	if props.Cfg != nil && props.Cfg.Locale != "" {
		lang = props.Cfg.Locale
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html>")
		buf.WriteString(`<html lang="` + templ.EscapeString(lang) + `">`)
		if err := renderAll(ctx, &buf, props, shared.Head); err != nil {
			return err
		}
		pageSlug := ""
		if props.Page != nil {
			pageSlug = string(props.Page.Slug)
		}
		buf.WriteString(`<body data-slug="` + templ.EscapeString(pageSlug) + `">`)
		buf.WriteString(`<div id="garden-root" class="page"><div id="garden-body">`)

		buf.WriteString(`<div class="left sidebar">`)
		if err := renderAll(ctx, &buf, props, page.Left...); err != nil {
			return err
		}
		buf.WriteString("</div>")

		buf.WriteString(`<div class="center"><div class="page-header">`)
		if err := renderAll(ctx, &buf, props, shared.Header...); err != nil {
			return err
		}
		buf.WriteString(`<div class="popover-hint">`)
		if err := renderAll(ctx, &buf, props, page.BeforeBody...); err != nil {
			return err
		}
		buf.WriteString("</div></div>")
		if err := renderAll(ctx, &buf, props, body); err != nil {
			return err
		}
		buf.WriteString(`<hr/><div class="page-footer">`)
		if err := renderAll(ctx, &buf, props, page.AfterBody...); err != nil {
			return err
		}
		buf.WriteString("</div></div>")

		buf.WriteString(`<div class="right sidebar">`)
		if err := renderAll(ctx, &buf, props, page.Right...); err != nil {
			return err
		}
		buf.WriteString("</div></div>")
		if err := renderAll(ctx, &buf, props, shared.Footer); err != nil {
			return err
		}
		buf.WriteString("</div></body></html>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func renderAll(ctx context.Context, buf *bytes.Buffer, props components.Props, comps ...components.Component) error {
	for _, c := range comps {
		if c == nil {
			continue
		}
		if err := c.Render(props).Render(ctx, buf); err != nil {
			return err
		}
	}
	return nil
}

// CollectCSS concatenates the base stylesheet and every distinct component
// stylesheet, in first-seen order.
func CollectCSS(comps ...components.Component) string {
	var b strings.Builder
	b.WriteString(baseCSS)
	seen := make(map[string]bool)
	for _, c := range comps {
		if c == nil {
			continue
		}
		css := c.CSS()
		if css == "" || seen[c.ID()] || seen[css] {
			continue
		}
		seen[c.ID()], seen[css] = true, true
		b.WriteString("\n")
		b.WriteString(css)
	}
	return b.String()
}
