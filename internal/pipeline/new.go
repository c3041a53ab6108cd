package pipeline

import (
	"slidecast/internal/config"
	"slidecast/internal/logger"
	"slidecast/internal/probe"
	"slidecast/internal/reconcile"
	"slidecast/internal/scheduler"
	"slidecast/internal/timing"
)

type implPipeline struct {
	cfg        *config.Config
	scheduler  scheduler.Scheduler
	prober     probe.Prober
	estimator  *timing.Estimator
	reconciler *reconcile.Reconciler
	verifier   *reconcile.Verifier
	logger     logger.Logger
}

// New creates a Pipeline instance.
func New(cfg *config.Config, sched scheduler.Scheduler, prober probe.Prober, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:        cfg,
		scheduler:  sched,
		prober:     prober,
		estimator:  timing.NewEstimator(nil),
		reconciler: reconcile.New(log),
		verifier:   reconcile.NewVerifier(prober, log),
		logger:     log,
	}
}
