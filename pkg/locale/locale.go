// Package locale holds the static table of UI languages the web interface
// can be displayed in.
package locale

// Language describes one selectable UI language.
type Language struct {
	Code       string // BCP 47 language tag
	Name       string // English name
	NativeName string
	RTL        bool
}

// DefaultCode is used when the browser does not report a supported language.
const DefaultCode = "en"

var supported = []Language{
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "de", Name: "German", NativeName: "Deutsch"},
	{Code: "es", Name: "Spanish", NativeName: "Español"},
	{Code: "fr", Name: "French", NativeName: "Français"},
	{Code: "it", Name: "Italian", NativeName: "Italiano"},
	{Code: "pt", Name: "Portuguese", NativeName: "Português"},
	{Code: "nl", Name: "Dutch", NativeName: "Nederlands"},
	{Code: "pl", Name: "Polish", NativeName: "Polski"},
	{Code: "ru", Name: "Russian", NativeName: "Русский"},
	{Code: "uk", Name: "Ukrainian", NativeName: "Українська"},
	{Code: "tr", Name: "Turkish", NativeName: "Türkçe"},
	{Code: "ar", Name: "Arabic", NativeName: "العربية", RTL: true},
	{Code: "he", Name: "Hebrew", NativeName: "עברית", RTL: true},
	{Code: "hi", Name: "Hindi", NativeName: "हिन्दी"},
	{Code: "ja", Name: "Japanese", NativeName: "日本語"},
	{Code: "ko", Name: "Korean", NativeName: "한국어"},
	{Code: "zh", Name: "Chinese", NativeName: "中文"},
}

// Supported returns the full language table in display order. The returned
// slice is a copy, callers may reorder it freely.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// ByCode looks up a language by its tag.
func ByCode(code string) (Language, bool) {
	for _, l := range supported {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Default returns the fallback UI language.
func Default() Language {
	l, _ := ByCode(DefaultCode)
	return l
}
