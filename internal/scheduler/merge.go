package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// mergeChunks concatenates the per-slide narration chunks into a single
// track in ascending slide order, regardless of the order synthesis
// finished in. The concat list uses paths relative to the chunk
// directory so ffmpeg's concat demuxer accepts them without the unsafe
// flag.
func (s *implScheduler) mergeChunks(ctx context.Context, chunks map[int]string, chunkDir, workDir string) (string, error) {
	indices := make([]int, 0, len(chunks))
	for idx := range chunks {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	var list strings.Builder
	for _, idx := range indices {
		list.WriteString(fmt.Sprintf("file '%s'\n", filepath.Base(chunks[idx])))
	}

	listPath := filepath.Join(chunkDir, "concat.txt")
	if err := os.WriteFile(listPath, []byte(list.String()), 0644); err != nil {
		return "", fmt.Errorf("write concat list: %w", err)
	}

	outPath := filepath.Join(workDir, "narration.mp3")
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", "concat.txt",
		"-c:a", s.cfg.FFmpeg.AudioCodec,
		"-b:a", s.cfg.FFmpeg.AudioBitrate,
		outPath,
	}

	s.logger.Info(ctx, "Merging %d narration chunks into %s", len(indices), outPath)
	if _, err := s.executor.ExecuteInDir(ctx, chunkDir, s.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg concat: %w", err)
	}

	return outPath, nil
}
