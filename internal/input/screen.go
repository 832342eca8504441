package input

// ScreenToGrid converts a window pixel (origin top-left, y down) into grid
// coordinates (origin bottom-left, y up), sampling the pixel centre.
func ScreenToGrid(x, y, height int) (float64, float64) {
	return float64(x) + 0.5, float64(height-y) - 0.5
}
