package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"slidecast/internal/metrics"
	"slidecast/internal/slides"
)

// Per-task result slots. Each slot is written by exactly one goroutine
// and read only after the group's WaitGroup has drained, so no result
// state is ever shared between in-flight tasks.
type imageTask struct {
	slideIdx int
	images   []string
	err      error
}

type audioTask struct {
	slideIdx int
	path     string
	err      error
}

// Run consumes the slide stream, spawning an image-fetch task for
// content slides with bullet points and a narration task for slides with
// speaker notes. Spawning never blocks on the next slide; the per-kind
// semaphores bound how much spawned work actually runs at once.
func (s *implScheduler) Run(ctx context.Context, stream <-chan slides.Slide, voice, workDir string) (*Result, error) {
	chunkDir := filepath.Join(workDir, "audio_chunks")
	imageDir := filepath.Join(workDir, "images")
	for _, dir := range []string{chunkDir, imageDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create work dir: %w", err)
		}
	}

	ttsSem := newSemaphore(s.cfg.Concurrency.MaxTTS)
	imgSem := newSemaphore(s.cfg.Concurrency.MaxImages)

	result := &Result{
		AudioChunks: make(map[int]string),
		AudioStatus: make(map[int]AudioStatus),
		Images:      make(map[int][]string),
	}

	var (
		imageTasks []*imageTask
		audioTasks []*audioTask
		imageWG    sync.WaitGroup
		audioWG    sync.WaitGroup
	)

	for slide := range stream {
		result.Slides = append(result.Slides, slide)
		s.logger.Info(ctx, "Slide %d received: %s", slide.SlideIndex+1, slide.Title)

		if slide.Type == slides.TypeContent && len(slide.Points) > 0 {
			task := &imageTask{slideIdx: slide.SlideIndex}
			imageTasks = append(imageTasks, task)
			imageWG.Add(1)
			go s.runImageTask(ctx, slide, imageDir, imgSem, task, &imageWG)
			s.logger.Debug(ctx, "Spawned image fetch for slide %d", slide.SlideIndex+1)
		}

		if slide.SpeakerNotes != "" {
			task := &audioTask{
				slideIdx: slide.SlideIndex,
				path:     filepath.Join(chunkDir, fmt.Sprintf("slide_%03d.mp3", slide.SlideIndex)),
			}
			audioTasks = append(audioTasks, task)
			audioWG.Add(1)
			go s.runAudioTask(ctx, slide, voice, ttsSem, task, &audioWG)
			s.logger.Debug(ctx, "Spawned narration synthesis for slide %d", slide.SlideIndex+1)
		} else {
			result.AudioStatus[slide.SlideIndex] = AudioSkipped
		}
	}

	// Stream exhausted: drain images first, then narration. Completion
	// order within each group does not matter; collection happens after.
	s.logger.Info(ctx, "Slide stream exhausted, awaiting %d image tasks", len(imageTasks))
	imageWG.Wait()
	for _, task := range imageTasks {
		if task.err != nil {
			s.logger.Warn(ctx, "Image fetch failed for slide %d: %v", task.slideIdx+1, task.err)
			metrics.TaskFailures.WithLabelValues("image-fetch").Inc()
			result.Images[task.slideIdx] = []string{}
			continue
		}
		result.Images[task.slideIdx] = task.images
	}

	s.logger.Info(ctx, "Awaiting %d narration tasks", len(audioTasks))
	audioWG.Wait()
	for _, task := range audioTasks {
		if task.err != nil {
			s.logger.Warn(ctx, "Narration synthesis failed for slide %d: %v", task.slideIdx+1, task.err)
			metrics.TaskFailures.WithLabelValues("narration-audio").Inc()
			result.AudioStatus[task.slideIdx] = AudioFailed
			continue
		}
		result.AudioChunks[task.slideIdx] = task.path
		result.AudioStatus[task.slideIdx] = AudioOK
	}

	if len(result.AudioChunks) == 0 {
		return nil, ErrNoNarration
	}

	merged, err := s.mergeChunks(ctx, result.AudioChunks, chunkDir, workDir)
	if err != nil {
		return nil, fmt.Errorf("merge narration chunks: %w", err)
	}
	result.MergedAudioPath = merged

	return result, nil
}

func (s *implScheduler) runImageTask(ctx context.Context, slide slides.Slide, imageDir string, sem *semaphore, task *imageTask, wg *sync.WaitGroup) {
	defer wg.Done()

	if err := sem.acquire(ctx); err != nil {
		task.err = err
		return
	}
	defer sem.release()

	taskCtx, cancel := context.WithTimeout(ctx, s.taskTimeout)
	defer cancel()

	task.images, task.err = s.fetcher.FetchImagesForSlide(taskCtx, slide, imageDir)
}

func (s *implScheduler) runAudioTask(ctx context.Context, slide slides.Slide, voice string, sem *semaphore, task *audioTask, wg *sync.WaitGroup) {
	defer wg.Done()

	if err := sem.acquire(ctx); err != nil {
		task.err = err
		return
	}
	defer sem.release()

	taskCtx, cancel := context.WithTimeout(ctx, s.taskTimeout)
	defer cancel()

	task.err = s.synth.Synthesize(taskCtx, slide.SpeakerNotes, voice, task.path)
}
