package catalog

import "github.com/aniview/aniview/internal/catalog/jikan"

// japaneseStudios is the allow-list of well-known Japanese animation
// studios. Studios absent from the list can still pass the heuristic via
// the origin-country field or a Japanese-script name.
var japaneseStudios = map[string]struct{}{
	"Kyoto Animation":      {},
	"Studio Ghibli":        {},
	"Madhouse":             {},
	"Production I.G":       {},
	"A-1 Pictures":         {},
	"ufotable":             {},
	"MAPPA":                {},
	"Shaft":                {},
	"Sunrise":              {},
	"TRIGGER":              {},
	"WIT STUDIO":           {},
	"P.A.Works":            {},
	"J.C.Staff":            {},
	"Toei Animation":       {},
	"OLM":                  {},
	"GAINAX":               {},
	"Kinema Citrus":        {},
	"GONZO":                {},
	"GoHands":              {},
	"Satellite":            {},
	"Sanzigen":             {},
	"SILVER LINK.":         {},
	"XEBEC":                {},
	"Studio GoHands":       {},
	"Studio Comet":         {},
	"Studio DEEN":          {},
	"ZEXCS":                {},
	"Zero-G":               {},
	"Tatsunoko Production": {},
	"Diomedéa":             {},
	"DLE":                  {},
	"david production":     {},
	"TMS Entertainment":    {},
	"Fanworks":             {},
	"feel.":                {},
	"Brains Base":          {},
	"project No.9":         {},
	"Production IMS":       {},
	"WHITE FOX":            {},
	"Bones":                {},
	"Polygon Pictures":     {},
	"LIDEN FILMS":          {},
	"Lerche":               {},
}

// IsJapaneseProduction reports whether a raw record looks like a Japanese
// production. The check is heuristic, not authoritative: a Japanese studio
// with a romanized name missing from the allow-list is a false negative, and
// a foreign studio whose name happens to contain CJK characters is a false
// positive.
func IsJapaneseProduction(raw jikan.Anime) bool {
	for _, studio := range raw.Studios {
		if _, ok := japaneseStudios[studio.Name]; ok {
			return true
		}
		if containsJapaneseScript(studio.Name) {
			return true
		}
	}
	return raw.OriginCountry == "Japan"
}

// containsJapaneseScript reports whether s contains hiragana, katakana or
// CJK ideograph runes.
func containsJapaneseScript(s string) bool {
	for _, r := range s {
		switch {
		case r >= 0x3040 && r <= 0x309F: // hiragana
			return true
		case r >= 0x30A0 && r <= 0x30FF: // katakana
			return true
		case r >= 0x4E00 && r <= 0x9FAF: // CJK ideographs
			return true
		}
	}
	return false
}
