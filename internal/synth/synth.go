package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// synthesisRequest is the speech service's per-segment payload. The
// service appends PauseAfterMs of silence to the returned audio, so
// pause tags survive concatenation.
type synthesisRequest struct {
	Text         string `json:"text"`
	Voice        string `json:"voice"`
	Rate         string `json:"rate,omitempty"`
	Pitch        string `json:"pitch,omitempty"`
	PauseAfterMs int    `json:"pause_after_ms,omitempty"`
}

// Synthesize splits the tagged notes into sentence segments, requests
// audio for each with its own voice, rate and pitch, and appends the
// returned MP3 streams into outputPath. A segment failure aborts the
// slide; the scheduler decides whether that is fatal for the job.
func (s *implSynth) Synthesize(ctx context.Context, text, voice, outputPath string) error {
	segments := s.segmenter.Split(text, voice)
	if len(segments) == 0 {
		return fmt.Errorf("no synthesizable text")
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	defer out.Close()

	var written int64
	for i, seg := range segments {
		data, err := s.synthesizeSegment(ctx, seg.Text, seg.Voice, seg.Rate, seg.Pitch, seg.PauseAfter)
		if err != nil {
			os.Remove(outputPath)
			return fmt.Errorf("segment %d: %w", i, err)
		}
		n, err := out.Write(data)
		if err != nil {
			os.Remove(outputPath)
			return fmt.Errorf("append segment %d: %w", i, err)
		}
		written += int64(n)
	}

	if written == 0 {
		os.Remove(outputPath)
		return fmt.Errorf("speech service returned no audio")
	}

	s.logger.Debug(ctx, "Synthesized %d segments (%d bytes) into %s", len(segments), written, outputPath)
	return nil
}

func (s *implSynth) synthesizeSegment(ctx context.Context, text, voice, rate, pitch string, pauseMs int) ([]byte, error) {
	payload, err := json.Marshal(synthesisRequest{
		Text:         text,
		Voice:        voice,
		Rate:         rate,
		Pitch:        pitch,
		PauseAfterMs: pauseMs,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/synthesize", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call speech service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("speech service status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return data, nil
}
