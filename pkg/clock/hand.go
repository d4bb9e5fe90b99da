package clock

// Hand identifies one of the two clock hands.
type Hand int

const (
	HandNone Hand = iota
	HandHour
	HandMinute
)

func (h Hand) String() string {
	switch h {
	case HandHour:
		return "hour"
	case HandMinute:
		return "minute"
	}
	return "none"
}

// ParseHand reads "hour" or "minute"; anything else is HandNone.
func ParseHand(s string) Hand {
	switch s {
	case "hour":
		return HandHour
	case "minute":
		return HandMinute
	}
	return HandNone
}
