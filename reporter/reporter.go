// Package reporter implements the Reporter hook the strategies call into
// at each pipeline stage, and a logrus-backed implementation for
// production use.
package reporter

import (
	"time"

	"github.com/aram/evolve/chromosome"
	"github.com/aram/evolve/operators/extensions"
	"github.com/sirupsen/logrus"
)

// Reporter observes a strategy run without influencing it. Every method
// must return quickly — strategies call these synchronously, inline with
// the generation loop.
type Reporter interface {
	OnStart(strategyName string)
	OnNewGeneration(iteration int, populationSize int)
	OnNewBestChromosome(generation int, c *chromosome.Chromosome)
	OnExtensionEvent(kind extensions.Kind, triggered bool, populationSize int)
	OnFinish(iteration int, bestFitnessScore *int64, durations map[string]time.Duration)
}

// NoopReporter discards every event; the zero value is ready to use.
type NoopReporter struct{}

func (NoopReporter) OnStart(string)                                  {}
func (NoopReporter) OnNewGeneration(int, int)                        {}
func (NoopReporter) OnNewBestChromosome(int, *chromosome.Chromosome) {}
func (NoopReporter) OnExtensionEvent(extensions.Kind, bool, int)     {}
func (NoopReporter) OnFinish(int, *int64, map[string]time.Duration) {}

// LogReporter logs every event through a logrus.FieldLogger, one line per
// event with structured fields rather than a formatted message body.
type LogReporter struct {
	Log *logrus.Logger
}

// NewLogReporter builds a LogReporter around a fresh, default-configured
// logrus.Logger when log is nil.
func NewLogReporter(log *logrus.Logger) *LogReporter {
	if log == nil {
		log = logrus.New()
	}
	return &LogReporter{Log: log}
}

func (r *LogReporter) OnStart(strategyName string) {
	r.Log.WithField("strategy", strategyName).Info("strategy started")
}

func (r *LogReporter) OnNewGeneration(iteration int, populationSize int) {
	r.Log.WithFields(logrus.Fields{
		"iteration":       iteration,
		"population_size": populationSize,
	}).Debug("new generation")
}

func (r *LogReporter) OnNewBestChromosome(generation int, c *chromosome.Chromosome) {
	entry := r.Log.WithField("generation", generation)
	if c.FitnessScore != nil {
		entry = entry.WithField("fitness_score", *c.FitnessScore)
	}
	entry.Info("new best chromosome")
}

func (r *LogReporter) OnExtensionEvent(kind extensions.Kind, triggered bool, populationSize int) {
	r.Log.WithFields(logrus.Fields{
		"extension":       kind.String(),
		"triggered":       triggered,
		"population_size": populationSize,
	}).Info("extension check")
}

func (r *LogReporter) OnFinish(iteration int, bestFitnessScore *int64, durations map[string]time.Duration) {
	entry := r.Log.WithField("iterations", iteration)
	if bestFitnessScore != nil {
		entry = entry.WithField("best_fitness_score", *bestFitnessScore)
	}
	for action, d := range durations {
		entry = entry.WithField("duration_"+action, d)
	}
	entry.Info("strategy finished")
}
