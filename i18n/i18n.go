// Package i18n provides the locale strings components render. Counted
// messages go through an x/text message catalog so plural forms follow the
// locale's rules.
package i18n

import (
	"strings"
	"time"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	keySeeRemainingMore = "recentNotes.seeRemainingMore"
	keyReadingTime      = "contentMeta.readingTime"
	keyItemsUnder       = "folderContent.itemsUnderFolder"
)

// Strings are the fixed labels of one locale.
type Strings struct {
	RecentNotesTitle       string
	AboutAuthorTitle       string
	AboutAuthorDescription string
	DefaultTitle           string
	BacklinksTitle         string
	NoBacklinks            string
	GraphTitle             string
	SearchTitle            string
	SearchPlaceholder      string
	CreatedWith            string
	SeeMore                string
	Emerged                string
	Evolved                string
	By                     string
	NotFound               string
	HomeLink               string

	// dateLayout uses Go reference-time syntax; "Jan" is replaced by months.
	dateLayout string
	months     [12]string
}

// Locale formats messages for one language.
type Locale struct {
	Tag language.Tag
	Strings
}

var supported = []language.Tag{language.AmericanEnglish, language.German}

var matcher = language.NewMatcher(supported)

var englishMonths = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var locales = map[language.Tag]*Locale{
	language.AmericanEnglish: {
		Tag: language.AmericanEnglish,
		Strings: Strings{
			RecentNotesTitle:       "Recent Notes",
			AboutAuthorTitle:       "About the author",
			AboutAuthorDescription: "I write about linking ideas, building a personal knowledge system and doing thoughtful work. This garden is where those notes grow in public.",
			DefaultTitle:           "Untitled",
			BacklinksTitle:         "Backlinks",
			NoBacklinks:            "No backlinks found",
			GraphTitle:             "Graph View",
			SearchTitle:            "Search",
			SearchPlaceholder:      "Search for something",
			CreatedWith:            "Created with",
			SeeMore:                "See more →",
			Emerged:                "emerged",
			Evolved:                "evolved",
			By:                     "by",
			NotFound:               "Either this page is private or doesn't exist.",
			HomeLink:               "Return to Homepage",
			dateLayout:             "Jan 02, 2006",
			months:                 englishMonths,
		},
	},
	language.German: {
		Tag: language.German,
		Strings: Strings{
			RecentNotesTitle:       "Neueste Notizen",
			AboutAuthorTitle:       "Über den Autor",
			AboutAuthorDescription: "Ich schreibe über das Verknüpfen von Ideen und persönliche Wissenssysteme. Hier wachsen diese Notizen öffentlich.",
			DefaultTitle:           "Ohne Titel",
			BacklinksTitle:         "Backlinks",
			NoBacklinks:            "Keine Backlinks gefunden",
			GraphTitle:             "Graphansicht",
			SearchTitle:            "Suche",
			SearchPlaceholder:      "Suche nach etwas",
			CreatedWith:            "Erstellt mit",
			SeeMore:                "Mehr anzeigen →",
			Emerged:                "entstanden",
			Evolved:                "weiterentwickelt",
			By:                     "von",
			NotFound:               "Diese Seite ist entweder privat oder existiert nicht.",
			HomeLink:               "Zurück zur Startseite",
			dateLayout:             "02. Jan 2006",
			months:                 [12]string{"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez."},
		},
	},
}

var cat = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.AmericanEnglish))
	set := func(tag language.Tag, key string, msg ...catalog.Message) {
		if err := b.Set(tag, key, msg...); err != nil {
			panic("i18n: " + key + ": " + err.Error())
		}
	}
	set(language.AmericanEnglish, keySeeRemainingMore,
		plural.Selectf(1, "%d", "=1", "See 1 more →", "other", "See %d more →"))
	set(language.AmericanEnglish, keyReadingTime, catalog.String("%d min read"))
	set(language.German, keySeeRemainingMore,
		plural.Selectf(1, "%d", "=1", "1 weitere Notiz →", "other", "%d weitere Notizen →"))
	set(language.German, keyReadingTime, catalog.String("%d Min. Lesezeit"))
	set(language.AmericanEnglish, keyItemsUnder,
		plural.Selectf(1, "%d", "=1", "1 item under this folder.", "other", "%d items under this folder."))
	set(language.German, keyItemsUnder,
		plural.Selectf(1, "%d", "=1", "1 Eintrag in diesem Ordner.", "other", "%d Einträge in diesem Ordner."))
	return b
}

// For returns the closest supported locale to a BCP 47 string, defaulting to
// en-US.
func For(locale string) *Locale {
	_, idx, _ := matcher.Match(language.Make(locale))
	return locales[supported[idx]]
}

func (l *Locale) printer() *message.Printer {
	return message.NewPrinter(l.Tag, message.Catalog(cat))
}

// SeeRemainingMore is the label of the "see more" link under a truncated list.
func (l *Locale) SeeRemainingMore(remaining int) string {
	return l.printer().Sprintf(keySeeRemainingMore, remaining)
}

// ReadingTime formats an estimate in whole minutes.
func (l *Locale) ReadingTime(minutes int) string {
	return l.printer().Sprintf(keyReadingTime, minutes)
}

// ItemsUnderFolder is the count line above a folder listing.
func (l *Locale) ItemsUnderFolder(n int) string {
	return l.printer().Sprintf(keyItemsUnder, n)
}

// FormatDate renders t as a short date, e.g. "Jan 02, 2024".
func (l *Locale) FormatDate(t time.Time) string {
	s := t.Format(l.dateLayout)
	return strings.Replace(s, englishMonths[t.Month()-1], l.months[t.Month()-1], 1)
}
