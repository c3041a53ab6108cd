package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"slidecast/internal/metrics"
	"slidecast/internal/reconcile"
	"slidecast/internal/slides"
	"slidecast/internal/subtitle"
	"slidecast/internal/transcript"
)

// Process orchestrates one job end to end: stream the deck through the
// scheduler, measure the merged narration, reconcile the estimated
// timeline against it, and write the timing artifacts.
func (p *implPipeline) Process(ctx context.Context, jobPath string) error {
	startTime := time.Now()
	metrics.ActiveJobs.Inc()
	defer metrics.ActiveJobs.Dec()

	err := p.process(ctx, jobPath)
	elapsed := time.Since(startTime)
	metrics.JobDuration.Observe(elapsed.Seconds())

	if err != nil {
		metrics.JobsProcessed.WithLabelValues("failed").Inc()
		return err
	}
	metrics.JobsProcessed.WithLabelValues("success").Inc()
	p.logger.Info(ctx, "Job %s completed in %s", filepath.Base(jobPath), elapsed)
	return nil
}

func (p *implPipeline) process(ctx context.Context, jobPath string) error {
	jobName := strings.TrimSuffix(filepath.Base(jobPath), filepath.Ext(jobPath))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting job: %s", jobPath)
	p.logger.Info(ctx, "========================================")

	script, err := slides.LoadScript(jobPath)
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	voice := p.pickVoice(script)

	projectDir := filepath.Join(p.cfg.Paths.Output, jobName)
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return fmt.Errorf("create project dir: %w", err)
	}

	// Step 1: stream slides through the production scheduler.
	stream, errCh := slides.NewFileSource(script).Stream(ctx)
	result, err := p.scheduler.Run(ctx, stream, voice, projectDir)
	if err != nil {
		return fmt.Errorf("schedule production: %w", err)
	}
	for streamErr := range errCh {
		if streamErr != nil {
			return fmt.Errorf("slide stream: %w", streamErr)
		}
	}

	// Step 2: measure the merged narration.
	actual, err := p.prober.Duration(ctx, result.MergedAudioPath)
	if err != nil {
		return fmt.Errorf("measure narration: %w", err)
	}
	p.logger.Info(ctx, "Merged narration measures %.3fs", actual)

	// Step 3: estimate and reconcile.
	estimate := p.estimator.Estimate(script.Narration(), script.Lang, voice, "")
	mapping := slides.BuildMapping(script.Slides, len(estimate.Sentences),
		p.estimator.Segmenter(), p.cfg.Timing.TitleSlideSec, p.cfg.Timing.SilentSlideSec)

	timings, err := p.reconciler.Reconcile(ctx, estimate.Sentences, actual, mapping)
	if err != nil {
		return fmt.Errorf("reconcile timings: %w", err)
	}
	metrics.ScaleFactor.Observe(timings.ScaleFactor)

	// Step 4: write artifacts.
	if err := p.writeArtifacts(ctx, projectDir, script, timings); err != nil {
		return err
	}

	// Step 5: verify the merged audio against the reconciled timeline.
	if len(timings.Sentences) > 0 {
		expected := timings.Sentences[len(timings.Sentences)-1].End
		if _, _, msg, err := p.verifier.VerifySync(ctx, result.MergedAudioPath, expected, p.cfg.Timing.SyncToleranceSec); err != nil {
			p.logger.Warn(ctx, "Sync verification skipped: %v", err)
		} else {
			p.logger.Info(ctx, "Sync verification: %s", msg)
		}
	}

	if err := p.archiveJob(ctx, jobPath); err != nil {
		p.logger.Warn(ctx, "Failed to archive job file: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Job completed: %d slides, %d sentences, scale %.4f",
		timings.SlideCount, timings.SentenceCount, timings.ScaleFactor)
	p.logger.Info(ctx, "Output directory: %s", projectDir)
	p.logger.Info(ctx, "========================================")

	return nil
}

// pickVoice resolves the narration voice: the script's own choice wins,
// then the language-specific default.
func (p *implPipeline) pickVoice(script *slides.Script) string {
	if script.Voice != "" {
		return script.Voice
	}
	if strings.HasPrefix(script.Lang, "hi") && p.cfg.TTS.HindiVoice != "" {
		return p.cfg.TTS.HindiVoice
	}
	return p.cfg.TTS.DefaultVoice
}

// writeArtifacts emits timings.json, both subtitle formats and the
// docx handout into the project directory.
func (p *implPipeline) writeArtifacts(ctx context.Context, projectDir string, script *slides.Script, timings *reconcile.Timings) error {
	timingsPath := filepath.Join(projectDir, "timings.json")
	data, err := json.MarshalIndent(timings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal timings: %w", err)
	}
	if err := os.WriteFile(timingsPath, data, 0644); err != nil {
		return fmt.Errorf("write timings: %w", err)
	}

	if err := subtitle.WriteVTT(filepath.Join(projectDir, "subs.vtt"), timings.Sentences); err != nil {
		return err
	}
	if err := subtitle.WriteSRT(filepath.Join(projectDir, "subs.srt"), timings.Sentences); err != nil {
		return err
	}

	if err := transcript.Write(script, timings, filepath.Join(projectDir, "transcript.docx")); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	p.logger.Info(ctx, "Artifacts written to %s", projectDir)
	return nil
}

func (p *implPipeline) archiveJob(ctx context.Context, jobPath string) error {
	archiveDir := filepath.Join(filepath.Dir(jobPath), "archived")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return err
	}
	dest := filepath.Join(archiveDir, filepath.Base(jobPath))
	p.logger.Debug(ctx, "Archiving job file: %s -> %s", jobPath, dest)
	return os.Rename(jobPath, dest)
}
