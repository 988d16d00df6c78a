package i18n

import (
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestForMatchesSupportedLocales(t *testing.T) {
	tests := []struct {
		input string
		want  language.Tag
	}{
		{"en-US", language.AmericanEnglish},
		{"en-GB", language.AmericanEnglish},
		{"de-DE", language.German},
		{"de", language.German},
		{"fr-FR", language.AmericanEnglish},
		{"", language.AmericanEnglish},
	}
	for _, tt := range tests {
		if got := For(tt.input).Tag; got != tt.want {
			t.Errorf("For(%q).Tag = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSeeRemainingMorePlural(t *testing.T) {
	en := For("en-US")
	if got := en.SeeRemainingMore(1); got != "See 1 more →" {
		t.Errorf("SeeRemainingMore(1) = %q", got)
	}
	if got := en.SeeRemainingMore(4); got != "See 4 more →" {
		t.Errorf("SeeRemainingMore(4) = %q", got)
	}
	de := For("de-DE")
	if got := de.SeeRemainingMore(2); got != "2 weitere Notizen →" {
		t.Errorf("de SeeRemainingMore(2) = %q", got)
	}
}

func TestReadingTime(t *testing.T) {
	if got := For("en-US").ReadingTime(3); got != "3 min read" {
		t.Errorf("ReadingTime(3) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if got := For("en-US").FormatDate(d); got != "Mar 05, 2024" {
		t.Errorf("en FormatDate = %q", got)
	}
	if got := For("de-DE").FormatDate(d); got != "05. März 2024" {
		t.Errorf("de FormatDate = %q", got)
	}
}

func TestItemsUnderFolder(t *testing.T) {
	en := For("en-US")
	if got := en.ItemsUnderFolder(1); got != "1 item under this folder." {
		t.Errorf("ItemsUnderFolder(1) = %q", got)
	}
	if got := en.ItemsUnderFolder(7); got != "7 items under this folder." {
		t.Errorf("ItemsUnderFolder(7) = %q", got)
	}
}
