// Package logfields keeps the slog attribute keys used across the garden
// consistent between the build pass, the loader and the preview server.
package logfields

import (
	"log/slog"
	"time"
)

const (
	KeySlug       = "slug"
	KeyPath       = "path"
	KeyStage      = "stage"
	KeyLayout     = "layout"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyBuildID    = "build_id"
	KeyMethod     = "method"
	KeyURI        = "uri"
	KeyStatus     = "status"
	KeyAddr       = "addr"
	KeyError      = "error"
)

func Slug(s string) slog.Attr       { return slog.String(KeySlug, s) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Stage(name string) slog.Attr   { return slog.String(KeyStage, name) }
func Layout(name string) slog.Attr  { return slog.String(KeyLayout, name) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func BuildID(id string) slog.Attr   { return slog.String(KeyBuildID, id) }
func Method(m string) slog.Attr     { return slog.String(KeyMethod, m) }
func URI(u string) slog.Attr        { return slog.String(KeyURI, u) }
func Status(code int) slog.Attr     { return slog.Int(KeyStatus, code) }
func Addr(a string) slog.Attr       { return slog.String(KeyAddr, a) }
func Since(start time.Time) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(time.Since(start).Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
