package speech

import (
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/matzehuels/uhrzeit/pkg/errors"
)

// Setting is the user's language preference.
type Setting string

const (
	SettingAuto    Setting = "auto"
	SettingGerman  Setting = "de"
	SettingEnglish Setting = "en"
)

// ParseSetting parses a language preference. The empty string means auto.
func ParseSetting(s string) (Setting, error) {
	switch v := Setting(strings.ToLower(strings.TrimSpace(s))); v {
	case "", SettingAuto:
		return SettingAuto, nil
	case SettingGerman, SettingEnglish:
		return v, nil
	}
	return "", errors.New(errors.ErrCodeInvalidLanguage,
		"unknown language %q: must be one of auto, de, en", s)
}

// Valid reports whether s is a known setting.
func (s Setting) Valid() bool {
	return s == SettingAuto || s == SettingGerman || s == SettingEnglish
}

// Language is a concrete spoken language.
type Language string

const (
	German  Language = "de"
	English Language = "en"
)

// Locale returns the BCP 47 locale used for synthesis.
func (l Language) Locale() string {
	if l == German {
		return "de-DE"
	}
	return "en-US"
}

// ResolveLanguage maps a setting to a concrete language. Auto selects German
// when the reported system language is German or missing and English
// otherwise.
func ResolveLanguage(s Setting, reported string) Language {
	switch s {
	case SettingGerman:
		return German
	case SettingEnglish:
		return English
	}
	if strings.TrimSpace(reported) == "" || isGerman(reported) {
		return German
	}
	return English
}

func isGerman(reported string) bool {
	// POSIX locales look like de_DE.UTF-8@euro
	v := reported
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	v = strings.ReplaceAll(v, "_", "-")
	if tag, err := language.Parse(v); err == nil {
		base, _ := tag.Base()
		return base.String() == "de"
	}
	return strings.HasPrefix(strings.ToLower(reported), "de")
}

// SystemLanguage returns the language reported by the environment, or "" if
// none is set.
func SystemLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" && v != "C" && v != "POSIX" {
			return v
		}
	}
	return ""
}
