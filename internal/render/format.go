package render

import "fmt"

// sizeSteps holds the unit suffixes for successive 1024x magnitudes of a
// kilobyte count.
const sizeSteps = "KMGTP"

// ageUnits holds the age units and their second-values, largest first.
var ageUnits = []struct {
	suffix  byte
	seconds float64
}{
	{'y', 365 * 24 * 3600},
	{'m', 30 * 24 * 3600},
	{'d', 24 * 3600},
	{'h', 3600},
}

// Size renders a kilobyte count as a fixed 3-character string such as "34K",
// ".4M" or " 5G". The last character is the unit suffix; the two before it
// are the magnitude, with the leading zero of sub-one values dropped. The
// suffix is clamped at P for magnitudes beyond the table.
func Size(kilobytes float64) string {
	size := kilobytes
	step := 0

	for size > 99 {
		size /= 1024
		step++
	}

	if step >= len(sizeSteps) {
		step = len(sizeSteps) - 1
	}

	var num string

	if size >= 0.95 {
		num = fmt.Sprintf("%2.0f", size)
	} else {
		num = fmt.Sprintf("%.1f", size)
		num = num[len(num)-2:] // "0.4" -> ".4"
	}

	return num + string(sizeSteps[step])
}

// Age renders an age in seconds as a fixed 3-character string such as "10m"
// or "05h", choosing the largest unit whose count reaches 1.5. Ages below
// 1.5 hours render as "00h"; counts past two digits clamp to "99y".
func Age(seconds float64) string {
	for _, unit := range ageUnits {
		if count := seconds / unit.seconds; count >= 1.5 {
			n := int(count)
			if n > 99 {
				n = 99
			}

			return fmt.Sprintf("%02d%c", n, unit.suffix)
		}
	}

	return "00h"
}
