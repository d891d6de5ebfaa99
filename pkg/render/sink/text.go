package sink

const (
	fontHeightRatio = 0.25
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 24.0
)

// fontSize fits text of textLen characters into a w×h tile.
func fontSize(w, h float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := h * fontHeightRatio
	byWidth := (w * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// truncate shortens s with an ellipsis so it fits in w at the given size.
func truncate(s string, w, size float64) string {
	maxChars := int(w * fontWidthRatio / (size * fontCharWidth))
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	if maxChars <= 1 {
		return ""
	}
	return string(runes[:maxChars-1]) + "…"
}
