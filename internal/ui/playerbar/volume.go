package playerbar

import (
	"fmt"
	"math"
)

// SliderMax is the top of the user-facing volume scale.
const SliderMax = 100

// RenderVolume renders the volume indicator, e.g. "♪  80%".
func RenderVolume(level float64) string {
	icon := "♪"
	if level <= 0 {
		icon = "×"
	}
	return fmt.Sprintf("%s %3d%%", icon, LevelToSlider(level))
}

// SliderToLevel maps a slider value in [0, 100] to a volume level in [0, 1].
func SliderToLevel(v int) float64 {
	return float64(min(max(v, 0), SliderMax)) / SliderMax
}

// LevelToSlider maps a volume level in [0, 1] to the slider scale.
func LevelToSlider(level float64) int {
	if math.IsNaN(level) {
		return 0
	}
	return int(math.Round(min(max(level, 0), 1) * SliderMax))
}

// StepVolume moves level by delta slider steps and returns the new level.
func StepVolume(level float64, delta int) float64 {
	return SliderToLevel(LevelToSlider(level) + delta)
}
