package speech

import "fmt"

// DefaultRate is the speaking rate relative to normal speed.
const DefaultRate = 0.9

// Utterance is a phrase ready for synthesis.
type Utterance struct {
	Text   string  `json:"text"`
	Locale string  `json:"locale"`
	Rate   float64 `json:"rate"`
}

// Phrase returns the spoken form of hour:minute in lang. Hour is 0–23.
//
// German uses the colloquial quarter forms, so 6:30 is "halb 7". English
// reads the 12-hour time with an AM/PM suffix.
func Phrase(hour, minute int, lang Language) string {
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	next := h12%12 + 1

	if lang == German {
		switch minute {
		case 0:
			return fmt.Sprintf("Es ist %d Uhr", hour)
		case 15:
			return fmt.Sprintf("Es ist viertel nach %d", h12)
		case 30:
			return fmt.Sprintf("Es ist halb %d", next)
		case 45:
			return fmt.Sprintf("Es ist viertel vor %d", next)
		default:
			return fmt.Sprintf("Es ist %d Uhr %d", hour, minute)
		}
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	if minute == 0 {
		return fmt.Sprintf("It's %d o'clock %s", h12, period)
	}
	return fmt.Sprintf("It's %d %d %s", h12, minute, period)
}

// NewUtterance builds the utterance for hour:minute under setting, resolving
// auto against reported.
func NewUtterance(hour, minute int, setting Setting, reported string) Utterance {
	lang := ResolveLanguage(setting, reported)
	return Utterance{
		Text:   Phrase(hour, minute, lang),
		Locale: lang.Locale(),
		Rate:   DefaultRate,
	}
}
