package image

import (
	"bytes"
	"context"
	goimage "image"
	gocolor "image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlab/tutor-cli/internal/index"
)

// fakeEmbedder maps text to letter-frequency vectors so related
// strings get a meaningful cosine similarity without a model.
type fakeEmbedder struct{}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, 26)
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			v[r-'a']++
		}
	}
	return v, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i], _ = f.Embed(ctx, t)
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int            { return 26 }
func (f *fakeEmbedder) ModelName() string          { return "fake" }
func (f *fakeEmbedder) Ping(context.Context) error { return nil }
func (f *fakeEmbedder) Close() error               { return nil }

// writePNG writes a solid-colour PNG of the given size to a temp file.
func writePNG(t *testing.T, name string, width, height int, fill gocolor.RGBA) string {
	t.Helper()
	img := goimage.NewRGBA(goimage.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestIndexer_UnsupportedFormat(t *testing.T) {
	ix := NewIndexer(&fakeEmbedder{})

	assert.False(t, ix.IndexFile(context.Background(), "document.pdf"))
}

func TestIndexer_MissingFile(t *testing.T) {
	ix := NewIndexer(&fakeEmbedder{})

	assert.False(t, ix.IndexFile(context.Background(), "/nonexistent/photo.png"))
	assert.Zero(t, ix.Stats().Documents)
}

func TestIndexer_UndecodableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))
	ix := NewIndexer(&fakeEmbedder{})

	assert.False(t, ix.IndexFile(context.Background(), path))
}

func TestIndexer_WhiteImageDescribedAsBright(t *testing.T) {
	path := writePNG(t, "white.png", 100, 100, gocolor.RGBA{255, 255, 255, 255})
	ix := NewIndexer(&fakeEmbedder{})

	require.True(t, ix.IndexFile(context.Background(), path))

	results, err := ix.Search(context.Background(), "bright white image", 1, 0.0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, strings.ToLower(results[0].Content), "bright")
	assert.Contains(t, results[0].Content, "white")
	assert.Contains(t, results[0].Content, "low resolution")
}

func TestIndexer_DarkImageDescribedAsDark(t *testing.T) {
	path := writePNG(t, "dark.png", 50, 50, gocolor.RGBA{10, 10, 10, 255})
	ix := NewIndexer(&fakeEmbedder{})

	require.True(t, ix.IndexFile(context.Background(), path))

	results, err := ix.Search(context.Background(), "dark black image", 1, 0.0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Content, "Dark image")
	assert.Contains(t, results[0].Content, "black")
}

func TestIndexer_LandscapeOrientation(t *testing.T) {
	path := writePNG(t, "wide.png", 200, 100, gocolor.RGBA{200, 30, 30, 255})
	ix := NewIndexer(&fakeEmbedder{})

	require.True(t, ix.IndexFile(context.Background(), path))

	results, err := ix.Search(context.Background(), "landscape", 1, 0.0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Content, "Landscape (horizontal)")
}

func TestIndexer_MetadataCarriesHashAndDimensions(t *testing.T) {
	path := writePNG(t, "photo.png", 120, 80, gocolor.RGBA{0, 0, 200, 255})
	ix := NewIndexer(&fakeEmbedder{})

	require.True(t, ix.IndexFile(context.Background(), path))

	results, err := ix.Search(context.Background(), "blue photo", 1, 0.0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	meta := results[0].Metadata
	assert.Equal(t, 120, meta["width"])
	assert.Equal(t, 80, meta["height"])
	assert.Equal(t, "png", meta["format"])
	assert.Equal(t, "image", meta["type"])
	assert.Len(t, meta["file_hash"], 32)
}

func TestIndexer_DuplicateImagesShareHash(t *testing.T) {
	a := writePNG(t, "a.png", 40, 40, gocolor.RGBA{0, 180, 0, 255})
	b := writePNG(t, "b.png", 40, 40, gocolor.RGBA{0, 180, 0, 255})
	ix := NewIndexer(&fakeEmbedder{})

	require.True(t, ix.IndexFile(context.Background(), a))
	require.True(t, ix.IndexFile(context.Background(), b))

	var hashes []string
	ix.store.Each(func(entry index.Entry) bool {
		hashes = append(hashes, entry.Metadata["file_hash"].(string))
		return true
	})
	require.Len(t, hashes, 2)
	assert.Equal(t, hashes[0], hashes[1])
}

func TestIndexer_SearchByProperties(t *testing.T) {
	small := writePNG(t, "small.png", 50, 50, gocolor.RGBA{128, 128, 128, 255})
	large := writePNG(t, "large.png", 400, 300, gocolor.RGBA{128, 128, 128, 255})
	ix := NewIndexer(&fakeEmbedder{})
	require.True(t, ix.IndexFile(context.Background(), small))
	require.True(t, ix.IndexFile(context.Background(), large))

	results := ix.SearchByProperties(PropertyFilter{MinWidth: 100})

	require.Len(t, results, 1)
	assert.Equal(t, large, results[0].Metadata["source"])

	assert.Len(t, ix.SearchByProperties(PropertyFilter{Formats: []string{"png"}}), 2)
	assert.Empty(t, ix.SearchByProperties(PropertyFilter{Formats: []string{"jpeg"}}))
}

func TestIndexer_StatsFormatDistribution(t *testing.T) {
	path := writePNG(t, "one.png", 30, 30, gocolor.RGBA{255, 255, 0, 255})
	ix := NewIndexer(&fakeEmbedder{})
	require.True(t, ix.IndexFile(context.Background(), path))

	stats := ix.Stats()

	assert.Equal(t, 1, stats.Documents)
	assert.Equal(t, 1, stats.Files)
	assert.Equal(t, map[string]int{"png": 1}, stats.Details["formats"])
}

func TestColorName(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b int
		want    string
	}{
		{"white", 250, 250, 250, "white"},
		{"black", 10, 10, 10, "black"},
		{"gray", 128, 130, 127, "gray"},
		{"red", 220, 40, 40, "red"},
		{"pink", 230, 120, 150, "pink"},
		{"green", 40, 200, 40, "green"},
		{"blue", 40, 40, 220, "blue"},
		{"yellow", 220, 220, 40, "yellow"},
		{"purple", 140, 60, 160, "purple"},
		{"orange", 180, 140, 40, "orange"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, colorName(tt.r, tt.g, tt.b))
		})
	}
}
