package clock

import "math"

// Face coordinates. Every clock is drawn on a 200×200 viewBox centered at
// (Center, Center) and scaled to its pixel size by the SVG viewport.
const (
	ViewBox = 200.0
	Center  = ViewBox / 2
)

const (
	hourSector   = 360.0 / 12
	minuteSector = 360.0 / 60
)

// Normalize maps any angle into [0, 360).
func Normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		return 0
	}
	return deg
}

// PointerAngle returns the clock angle of the vector from the center
// (cx, cy) to the pointer (px, py). A pointer exactly on the center has no
// direction and yields 0.
func PointerAngle(cx, cy, px, py float64) float64 {
	dx, dy := px-cx, py-cy
	if dx == 0 && dy == 0 {
		return 0
	}
	return Normalize(math.Atan2(dy, dx)*180/math.Pi + 90)
}

// AngleToHour snaps an angle to the nearest of twelve hour sectors, 0–11.
func AngleToHour(deg float64) int {
	return int(math.Round(Normalize(deg)/hourSector)) % 12
}

// AngleToMinute snaps an angle to the nearest of sixty minute sectors, 0–59.
func AngleToMinute(deg float64) int {
	return int(math.Round(Normalize(deg)/minuteSector)) % 60
}

// HourHandDegrees is the rotation of the hour hand at hour:minute.
func HourHandDegrees(hour, minute int) float64 {
	return float64(hour%12)*hourSector + float64(minute)*0.5
}

// MinuteHandDegrees is the rotation of the minute hand.
func MinuteHandDegrees(minute int) float64 {
	return float64(minute) * minuteSector
}

// Polar projects the point at radius r and clock angle deg around (cx, cy).
func Polar(cx, cy, r, deg float64) (x, y float64) {
	rad := deg * math.Pi / 180
	return cx + r*math.Sin(rad), cy - r*math.Cos(rad)
}

// SegmentDistance is the distance from (px, py) to the segment from
// (ax, ay) to (bx, by).
func SegmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := math.Max(0, math.Min(1, ((px-ax)*dx+(py-ay)*dy)/l2))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}
