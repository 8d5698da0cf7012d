package daylight

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Label is the time-of-day caption shown under the clock.
// Its boundaries (6, 12, 18) differ from the band boundaries on purpose:
// bands describe the light, labels describe the part of the day.
type Label int

const (
	LabelDawn Label = iota
	LabelMorning
	LabelAfternoon
	LabelNight
)

var labelKeys = [...]string{
	LabelDawn:      "dawn",
	LabelMorning:   "morning",
	LabelAfternoon: "afternoon",
	LabelNight:     "night",
}

// LabelFor returns the label for an hour in [0, 23].
func LabelFor(hour int) Label {
	switch {
	case hour < 6:
		return LabelDawn
	case hour < 12:
		return LabelMorning
	case hour < 18:
		return LabelAfternoon
	default:
		return LabelNight
	}
}

// String returns the English label.
func (l Label) String() string {
	if l < 0 || int(l) >= len(labelKeys) {
		return "unknown"
	}
	return labelKeys[l]
}

// Supported lists the languages labels are translated to. English is the fallback.
var Supported = []language.Tag{language.English, language.Korean}

var (
	labelCatalog = newLabelCatalog()
	matcher      = language.NewMatcher(Supported)
)

// newLabelCatalog panics on a bad entry, like MustParseHex, so a broken
// translation fails at init instead of falling back silently.
func newLabelCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	english := make(map[string]string, len(labelKeys))
	for _, key := range labelKeys {
		english[key] = key
	}
	korean := map[string]string{
		"dawn":      "새벽",
		"morning":   "오전",
		"afternoon": "오후",
		"night":     "밤",

		// Panel text, keyed by its English form
		MsgTime:       "시간",
		MsgHint:       "드래그로 회전, 휠로 확대",
		MsgScreenshot: "스크린샷 저장됨: %s",
	}

	err := errors.Join(
		addEntries(b.SetString, language.English, english),
		addEntries(b.SetString, language.Korean, korean),
	)
	if err != nil {
		panic(err)
	}
	return b
}

// addEntries registers every entry and joins the failures.
func addEntries(set func(tag language.Tag, key, msg string) error, tag language.Tag, entries map[string]string) error {
	var errs []error
	for key, text := range entries {
		if err := set(tag, key, text); err != nil {
			errs = append(errs, fmt.Errorf("catalog %s %q: %w", tag, key, err))
		}
	}
	return errors.Join(errs...)
}

// Panel text keys. English text is the key itself.
const (
	MsgTime       = "Time"
	MsgHint       = "Drag to rotate, scroll to zoom"
	MsgScreenshot = "Screenshot saved: %s"
)

// Printer returns a message printer backed by the label catalog.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(labelCatalog))
}

// MatchLanguage resolves a config language string ("ko", "en-US", ...) to a supported tag.
func MatchLanguage(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, idx, _ := matcher.Match(tag)
	return Supported[idx]
}

// Localized returns the label text in the given language.
func (l Label) Localized(tag language.Tag) string {
	return Printer(tag).Sprintf(l.String())
}
