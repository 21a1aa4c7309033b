package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	ffprobe "gopkg.in/vansante/go-ffprobe.v2"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
)

// mediaInfo is the probed shape of a video file.
type mediaInfo struct {
	Duration float64
	Width    int
	Height   int
	FPS      float64
	HasAudio bool
	FileSize int64
}

// toolkit holds the media operations the indexer depends on. The
// defaults shell out to ffprobe and ffmpeg; tests substitute fakes.
type toolkit struct {
	probe        func(ctx context.Context, path string) (*mediaInfo, error)
	extractAudio func(ctx context.Context, videoPath, wavPath string) error
	segmentAudio func(ctx context.Context, wavPath, dir string, segmentSeconds int) ([]string, error)
}

func defaultToolkit() toolkit {
	return toolkit{
		probe:        probeMedia,
		extractAudio: extractAudio,
		segmentAudio: segmentAudio,
	}
}

// probeMedia reads stream and format metadata via ffprobe.
func probeMedia(ctx context.Context, path string) (*mediaInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	data, err := ffprobe.ProbeURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("ffprobe: %w", err)
	}

	info := &mediaInfo{
		Duration: data.Format.DurationSeconds,
		HasAudio: data.FirstAudioStream() != nil,
		FileSize: stat.Size(),
	}
	if stream := data.FirstVideoStream(); stream != nil {
		info.Width = stream.Width
		info.Height = stream.Height
		info.FPS = parseFrameRate(stream.AvgFrameRate)
	}
	return info, nil
}

// parseFrameRate converts ffprobe's "num/den" rate notation.
func parseFrameRate(rate string) float64 {
	parts := strings.SplitN(rate, "/", 2)
	if len(parts) != 2 {
		v, _ := strconv.ParseFloat(rate, 64)
		return v
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0
	}
	return num / den
}

// extractAudio demuxes the audio track to 16 kHz mono PCM, the input
// format speech engines expect.
func extractAudio(ctx context.Context, videoPath, wavPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		wavPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg audio extraction: %w: %s", err, strings.TrimSpace(string(out)))
	}
	if _, err := os.Stat(wavPath); err != nil {
		return fmt.Errorf("%w: no audio written", domain.ErrNoAudioTrack)
	}
	return nil
}

// segmentAudio splits the WAV into fixed-length pieces and returns
// their paths in playback order.
func segmentAudio(ctx context.Context, wavPath, dir string, segmentSeconds int) ([]string, error) {
	pattern := filepath.Join(dir, "segment_%03d.wav")
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", wavPath,
		"-f", "segment",
		"-segment_time", strconv.Itoa(segmentSeconds),
		"-c", "copy",
		pattern,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg segmentation: %w: %s", err, strings.TrimSpace(string(out)))
	}

	segments, err := filepath.Glob(filepath.Join(dir, "segment_*.wav"))
	if err != nil {
		return nil, err
	}
	sort.Strings(segments)
	return segments, nil
}
