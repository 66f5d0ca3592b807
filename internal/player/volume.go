package player

import "math"

// silentVolume is the beep volume used for a zero level.
const silentVolume = -10

// ClampLevel limits a volume level to [0, 1].
func ClampLevel(level float64) float64 {
	if math.IsNaN(level) || level < 0 {
		return 0
	}
	if level > 1 {
		return 1
	}
	return level
}

// levelToVolume converts a 0.0-1.0 level to beep's Volume value.
// beep uses a logarithmic scale with base 2: 0 leaves the signal unchanged,
// -1 halves it, -2 quarters it. 1.0 -> 0, 0.5 -> -1, 0 -> silent.
func levelToVolume(level float64) (volume float64, silent bool) {
	level = ClampLevel(level)
	if level <= 0 {
		return silentVolume, true
	}
	if level >= 1 {
		return 0, false
	}
	return math.Log2(level), false
}
