package image

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/nfnt/resize"
	"github.com/rwcarlsen/goexif/exif"

	// Register decoders for every supported format.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxAnalysisWidth bounds the pixel analysis cost; wider images are
// downsampled before colour statistics are computed.
const maxAnalysisWidth = 300

// topColors is how many dominant colours are kept.
const topColors = 5

// dominantColor is one exact-RGB colour and its share of pixels.
type dominantColor struct {
	R, G, B    int
	Percentage float64
}

// info holds everything extracted from one image file.
type info struct {
	Width       int
	Height      int
	Format      string
	ColorMode   string
	FileSize    int64
	FileHash    string
	AspectRatio float64
	TotalPixels int

	Camera    string
	DateTaken string
	Software  string

	FocalLength float64
	FNumber     float64
	Shutter     float64
	ISO         int

	Brightness float64
	Contrast   float64
	Dominant   []dominantColor
}

// analyze decodes the image and computes metadata, EXIF fields and
// colour statistics. EXIF absence is not an error.
func analyze(data []byte) (*info, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	hash := md5.Sum(data)

	inf := &info{
		Width:       width,
		Height:      height,
		Format:      format,
		ColorMode:   colorMode(img),
		FileSize:    int64(len(data)),
		FileHash:    hex.EncodeToString(hash[:]),
		TotalPixels: width * height,
	}
	if height > 0 {
		inf.AspectRatio = math.Round(float64(width)/float64(height)*100) / 100
	}

	readExif(data, inf)
	analyzeColors(img, inf)

	return inf, nil
}

// colorMode names the pixel layout of the decoded image.
func colorMode(img image.Image) string {
	switch img.(type) {
	case *image.Gray:
		return "Grayscale (8-bit)"
	case *image.Gray16:
		return "Grayscale (16-bit)"
	case *image.Paletted:
		return "Palette (8-bit)"
	case *image.YCbCr:
		return "YCbCr (24-bit)"
	case *image.CMYK:
		return "CMYK (32-bit)"
	case *image.NRGBA, *image.RGBA:
		return "RGB with transparency (32-bit)"
	default:
		return "RGB (24-bit)"
	}
}

// readExif fills camera fields; images without EXIF are left as-is.
func readExif(data []byte, inf *info) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return
	}

	maker := stringTag(x, exif.Make)
	model := stringTag(x, exif.Model)
	if maker != "" && model != "" {
		inf.Camera = maker + " " + model
	}
	inf.DateTaken = stringTag(x, exif.DateTime)
	inf.Software = stringTag(x, exif.Software)

	inf.FocalLength = ratTag(x, exif.FocalLength)
	inf.FNumber = ratTag(x, exif.FNumber)
	inf.Shutter = ratTag(x, exif.ExposureTime)
	inf.ISO = intTag(x, exif.ISOSpeedRatings)
}

func stringTag(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return s
}

func ratTag(x *exif.Exif, name exif.FieldName) float64 {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func intTag(x *exif.Exif, name exif.FieldName) int {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return v
}

// analyzeColors computes brightness, contrast and the dominant exact
// RGB colours over a downsampled copy of the image.
func analyzeColors(img image.Image, inf *info) {
	if img.Bounds().Dx() > maxAnalysisWidth {
		img = resize.Resize(maxAnalysisWidth, 0, img, resize.Lanczos3)
	}

	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return
	}

	counts := make(map[[3]uint8]int)
	var sum, sumSq float64

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			counts[[3]uint8{c.R, c.G, c.B}]++
			for _, channel := range []uint8{c.R, c.G, c.B} {
				v := float64(channel)
				sum += v
				sumSq += v * v
			}
		}
	}

	samples := float64(total * 3)
	mean := sum / samples
	inf.Brightness = mean
	inf.Contrast = math.Sqrt(sumSq/samples - mean*mean)

	type freq struct {
		rgb   [3]uint8
		count int
	}
	ordered := make([]freq, 0, len(counts))
	for rgb, count := range counts {
		ordered = append(ordered, freq{rgb: rgb, count: count})
	}
	sort.Slice(ordered, func(a, b int) bool {
		if ordered[a].count != ordered[b].count {
			return ordered[a].count > ordered[b].count
		}
		return ordered[a].rgb[0] < ordered[b].rgb[0]
	})

	limit := topColors
	if len(ordered) < limit {
		limit = len(ordered)
	}
	for _, f := range ordered[:limit] {
		inf.Dominant = append(inf.Dominant, dominantColor{
			R:          int(f.rgb[0]),
			G:          int(f.rgb[1]),
			B:          int(f.rgb[2]),
			Percentage: float64(f.count) / float64(total) * 100,
		})
	}
}
