// Package clock provides the wall-clock time value and the geometry that maps
// between pointer positions, clock angles, and hour/minute values.
//
// # Angles
//
// All angles are in degrees, measured clockwise from the 12 o'clock
// direction and normalized into [0, 360). This is the orientation of an
// analog clock face in SVG user space, where y grows downwards.
//
//	a := clock.PointerAngle(100, 100, 150, 100) // 90: pointer at 3 o'clock
//	clock.AngleToHour(a)                        // 3
//	clock.AngleToMinute(a)                      // 15
//
// # Sectors
//
// Hours occupy twelve 30° sectors and minutes sixty 6° sectors. An angle
// snaps to the nearest sector center using round-half-away-from-zero, so an
// angle exactly between two sectors resolves to the later one (15° is hour 1).
// 360° and values just below it wrap back to sector 0.
//
// # Hands
//
// [HourHandDegrees] and [MinuteHandDegrees] give the rotation of each hand.
// The hour hand advances continuously with the minutes: 3:30 is 105°.
package clock
