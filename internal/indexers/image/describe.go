package image

import (
	"fmt"
	"strings"
)

// Resolution tiers in total pixels.
const (
	highResPixels   = 2_000_000
	mediumResPixels = 500_000
)

// Brightness thresholds on the 0-255 mean channel value.
const (
	brightThreshold = 200
	darkThreshold   = 80
)

// File size tiers in bytes.
const (
	largeFileBytes = 10 * 1024 * 1024
	smallFileBytes = 512 * 1024
)

// describe synthesises the searchable text for an image. The
// description is the only content that gets embedded, so every visual
// property worth querying must appear here in plain words.
func describe(inf *info) string {
	var parts []string

	sizeDesc := fmt.Sprintf("Image of %dx%d pixels", inf.Width, inf.Height)
	switch {
	case inf.TotalPixels > highResPixels:
		sizeDesc += " (high resolution)"
	case inf.TotalPixels > mediumResPixels:
		sizeDesc += " (medium resolution)"
	default:
		sizeDesc += " (low resolution)"
	}
	parts = append(parts, sizeDesc)

	parts = append(parts, fmt.Sprintf("Format %s in %s", strings.ToUpper(inf.Format), inf.ColorMode))

	switch {
	case inf.AspectRatio > 1.5:
		parts = append(parts, "Landscape (horizontal) orientation")
	case inf.AspectRatio < 0.75:
		parts = append(parts, "Portrait (vertical) orientation")
	default:
		parts = append(parts, "Square or near-square format")
	}

	if inf.Camera != "" {
		parts = append(parts, "Captured with "+inf.Camera)
	}
	if inf.DateTaken != "" {
		parts = append(parts, "Taken on "+inf.DateTaken)
	}

	if settings := describeSettings(inf); settings != "" {
		parts = append(parts, "Settings: "+settings)
	}

	switch {
	case inf.Brightness > brightThreshold:
		parts = append(parts, "Bright, well-lit image")
	case inf.Brightness < darkThreshold:
		parts = append(parts, "Dark image")
	default:
		parts = append(parts, "Medium lighting")
	}

	if len(inf.Dominant) > 0 {
		names := make([]string, 0, 3)
		for i, c := range inf.Dominant {
			if i == 3 {
				break
			}
			names = append(names, fmt.Sprintf("%s (%.1f%%)", colorName(c.R, c.G, c.B), c.Percentage))
		}
		parts = append(parts, "Dominant colors: "+strings.Join(names, ", "))
	}

	sizeMB := float64(inf.FileSize) / (1024 * 1024)
	switch {
	case inf.FileSize > largeFileBytes:
		parts = append(parts, fmt.Sprintf("Large file (%.1fMB)", sizeMB))
	case inf.FileSize < smallFileBytes:
		parts = append(parts, fmt.Sprintf("Small file (%.0fKB)", sizeMB*1024))
	}

	return strings.Join(parts, ". ") + "."
}

// describeSettings renders the derived EXIF camera settings.
func describeSettings(inf *info) string {
	var settings []string
	if inf.FocalLength > 0 {
		settings = append(settings, fmt.Sprintf("focal %.1fmm", inf.FocalLength))
	}
	if inf.FNumber > 0 {
		settings = append(settings, fmt.Sprintf("f/%.1f", inf.FNumber))
	}
	if inf.Shutter > 0 {
		if inf.Shutter < 1 {
			settings = append(settings, fmt.Sprintf("1/%ds", int(1/inf.Shutter)))
		} else {
			settings = append(settings, fmt.Sprintf("%.1fs", inf.Shutter))
		}
	}
	if inf.ISO > 0 {
		settings = append(settings, fmt.Sprintf("ISO %d", inf.ISO))
	}
	return strings.Join(settings, ", ")
}

// colorName maps an exact RGB triple to a coarse colour word.
func colorName(r, g, b int) string {
	maxC := max3(r, g, b)
	minC := min3(r, g, b)

	if maxC-minC < 30 {
		switch {
		case maxC > 200:
			return "white"
		case maxC < 80:
			return "black"
		default:
			return "gray"
		}
	}

	if r > g+50 && r > b+50 {
		if r > 200 && g < 100 && b < 100 {
			return "red"
		}
		if g > 100 || b > 100 {
			return "pink"
		}
	}
	if g > r+50 && g > b+50 {
		return "green"
	}
	if b > r+50 && b > g+50 {
		return "blue"
	}
	if r > 150 && g > 150 && b < 100 {
		return "yellow"
	}
	if r > 100 && g < 150 && b > 100 {
		return "purple"
	}
	if r > 150 && g > 100 && b < 100 {
		return "orange"
	}
	return "colorful"
}

func max3(a, b, c int) int {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
