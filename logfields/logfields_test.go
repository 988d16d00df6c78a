package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// Key drift would break anything grepping the build logs.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Slug", KeySlug, "essays/on-notes", Slug("essays/on-notes")},
		{"Path", KeyPath, "essays/On Notes.md", Path("essays/On Notes.md")},
		{"Stage", KeyStage, "render", Stage("render")},
		{"Layout", KeyLayout, "content", Layout("content")},
		{"Count", KeyCount, "12", Count(12)},
		{"BuildID", KeyBuildID, "b1", BuildID("b1")},
		{"Method", KeyMethod, "GET", Method("GET")},
		{"URI", KeyURI, "/maps/", URI("/maps/")},
		{"Status", KeyStatus, "404", Status(404)},
		{"Addr", KeyAddr, ":8080", Addr(":8080")},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
		{"NilError", KeyError, "", Error(nil)},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}
