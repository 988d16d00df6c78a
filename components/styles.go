package components

import "embed"

//go:embed styles/*.css
var styles embed.FS

func mustStyle(name string) string {
	b, err := styles.ReadFile("styles/" + name)
	if err != nil {
		panic("components: missing stylesheet " + name)
	}
	return string(b)
}

var (
	breadcrumbsStyle  = mustStyle("breadcrumbs.css")
	recentNotesStyle  = mustStyle("recentNotes.css")
	relatedNotesStyle = mustStyle("relatedNotes.css")
	contentMetaStyle  = mustStyle("contentMeta.css")
	aboutAuthorStyle  = mustStyle("aboutAuthor.css")
	ctaStyle          = mustStyle("callToAction.css")
	navbarStyle       = mustStyle("navbar.css")
	footerStyle       = mustStyle("footer.css")
	backlinksStyle    = mustStyle("backlinks.css")
	searchStyle       = mustStyle("search.css")
	graphStyle        = mustStyle("graph.css")
	listPageStyle     = mustStyle("listPage.css")
	propertiesStyle   = mustStyle("properties.css")
)
