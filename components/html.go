package components

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter accumulates markup. Text and attribute values are escaped; tag
// names and attribute names are trusted.
type htmlWriter struct {
	ctx context.Context
	buf bytes.Buffer
	err error
}

// markup returns a component that runs build into a buffer and writes the
// result in one piece.
func markup(build func(w *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &htmlWriter{ctx: ctx}
		build(w)
		if w.err != nil {
			return w.err
		}
		_, err := out.Write(w.buf.Bytes())
		return err
	})
}

func (w *htmlWriter) raw(s string) {
	w.buf.WriteString(s)
}

func (w *htmlWriter) text(s string) {
	w.buf.WriteString(templ.EscapeString(s))
}

// open writes a start tag. attrs are name/value pairs; a pair with an empty
// value is skipped.
func (w *htmlWriter) open(tag string, attrs ...string) {
	w.buf.WriteByte('<')
	w.buf.WriteString(tag)
	w.attrs(attrs)
	w.buf.WriteByte('>')
}

// void writes a self-closing element.
func (w *htmlWriter) void(tag string, attrs ...string) {
	w.buf.WriteByte('<')
	w.buf.WriteString(tag)
	w.attrs(attrs)
	w.buf.WriteString("/>")
}

func (w *htmlWriter) attrs(attrs []string) {
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i+1] == "" {
			continue
		}
		w.buf.WriteByte(' ')
		w.buf.WriteString(attrs[i])
		w.buf.WriteString(`="`)
		w.buf.WriteString(templ.EscapeString(attrs[i+1]))
		w.buf.WriteByte('"')
	}
}

func (w *htmlWriter) close(tag string) {
	w.buf.WriteString("</")
	w.buf.WriteString(tag)
	w.buf.WriteByte('>')
}

// element writes <tag attrs>text</tag>.
func (w *htmlWriter) element(tag, text string, attrs ...string) {
	w.open(tag, attrs...)
	w.text(text)
	w.close(tag)
}

// internalLink writes an anchor styled as an internal garden link.
func (w *htmlWriter) internalLink(href, text string) {
	w.element("a", text, "href", href, "class", "internal no-background")
}

// component renders a nested component into the buffer.
func (w *htmlWriter) component(c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(w.ctx, &w.buf)
}

// Nothing renders no markup.
var Nothing templ.Component = templ.NopComponent
