package slug

import "testing"

func TestSimplify(t *testing.T) {
	tests := []struct {
		input Full
		want  Simple
	}{
		{"index", "/"},
		{"maps/index", "maps/"},
		{"essays/on-notes", "essays/on-notes"},
		{"essays/reindex", "essays/reindex"},
		{"guides/setup/index", "guides/setup/"},
	}
	for _, tt := range tests {
		if got := Simplify(tt.input); got != tt.want {
			t.Errorf("Simplify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestJoinSegments(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"..", "essays/"}, "../essays/"},
		{[]string{".", "essays/bar"}, "./essays/bar"},
		{[]string{"..", "/"}, "../"},
		{[]string{"/a", "b"}, "/a/b"},
		{[]string{"", "a", "", "b/"}, "a/b/"},
		{[]string{"/", "/"}, "/"},
		{[]string{"/", "essays/"}, "/essays/"},
		{[]string{"/garden", "index.css"}, "/garden/index.css"},
	}
	for _, tt := range tests {
		if got := JoinSegments(tt.args...); got != tt.want {
			t.Errorf("JoinSegments(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestPathToRoot(t *testing.T) {
	tests := []struct {
		input Full
		want  Relative
	}{
		{"index", "."},
		{"essays/on-notes", ".."},
		{"guides/setup/index", "../.."},
	}
	for _, tt := range tests {
		if got := PathToRoot(tt.input); got != tt.want {
			t.Errorf("PathToRoot(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestResolveRelative(t *testing.T) {
	tests := []struct {
		current Full
		target  string
		want    Relative
	}{
		{"essays/on-notes", "essays/", "../essays/"},
		{"index", "essays/bar", "./essays/bar"},
		{"guides/setup/index", "guides/", "../../guides/"},
		{"essays/on-notes", "index", "../"},
		{"maps/index", "maps/index", "../maps/"},
	}
	for _, tt := range tests {
		if got := ResolveRelative(tt.current, tt.target); got != tt.want {
			t.Errorf("ResolveRelative(%q, %q) = %q, want %q", tt.current, tt.target, got, tt.want)
		}
	}
}

func TestFromFilePath(t *testing.T) {
	tests := []struct {
		input string
		want  Full
	}{
		{"Essays/On Notes.md", "Essays/On-Notes"},
		{"maps/_index.md", "maps/index"},
		{"Q&A?.md", "Q-and-A"},
		{"/index.md", "index"},
		{"assets/diagram.png", "assets/diagram.png"},
		{"growth 100%.md", "growth-100-percent"},
	}
	for _, tt := range tests {
		if got := FromFilePath(tt.input); got != tt.want {
			t.Errorf("FromFilePath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTransformLinkShortest(t *testing.T) {
	all := []Full{"index", "essays/target", "maps/index", "a/dup", "b/dup"}
	opts := TransformOptions{Strategy: Shortest, AllSlugs: all}
	tests := []struct {
		src    Full
		target string
		want   Relative
	}{
		{"essays/on-notes", "target", "../essays/target"},
		{"index", "target", "./essays/target"},
		{"essays/on-notes", "target#My Heading", "../essays/target#my-heading"},
		{"essays/on-notes", "dup", "../dup"},
		{"essays/on-notes", "maps/", "../maps/"},
	}
	for _, tt := range tests {
		if got := TransformLink(tt.src, tt.target, opts); got != tt.want {
			t.Errorf("TransformLink(%q, %q) = %q, want %q", tt.src, tt.target, got, tt.want)
		}
	}
}

func TestTransformLinkRelativeStrategy(t *testing.T) {
	got := TransformLink("essays/on-notes", "../maps/index", TransformOptions{Strategy: RelativeStrategy})
	if got != "../maps/" {
		t.Errorf("TransformLink relative = %q, want %q", got, "../maps/")
	}
}

func TestResolve(t *testing.T) {
	all := []Full{"index", "essays/target", "maps/index", "maps/tools", "a/dup", "b/dup"}
	tests := []struct {
		target string
		want   Full
		ok     bool
	}{
		{"target", "essays/target", true},
		{"maps/tools", "maps/tools", true},
		{"maps", "maps/index", true},
		{"dup", "", false},
		{"a/dup", "a/dup", true},
		{"missing", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Resolve(tt.target, all)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.target, got, ok, tt.want, tt.ok)
		}
	}
}

func TestInSectionNotIndex(t *testing.T) {
	tests := []struct {
		input Full
		want  bool
	}{
		{"essays/on-notes", true},
		{"essays/index", false},
		{"essays", false},
		{"maps/on-notes", false},
	}
	for _, tt := range tests {
		if got := InSectionNotIndex(tt.input, Writings); got != tt.want {
			t.Errorf("InSectionNotIndex(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
