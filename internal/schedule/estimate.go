package schedule

import "github.com/waveplan/waveplan/internal/graph"

// EstimateLayers computes the scheduling estimate. Durations are taken
// as declared; running in parallel neither speeds up nor slows down a
// task. An empty plan reports zero savings rather than an error.
func EstimateLayers(layers []Layer, g *graph.Graph) Estimate {
	var sequential float64
	for _, t := range g.Tasks() {
		sequential += t.EstimatedDuration
	}

	var parallel float64
	for _, l := range layers {
		parallel += l.Duration
	}

	var savings float64
	if sequential > 0 {
		savings = (sequential - parallel) / sequential * 100
	}

	return Estimate{
		SequentialTotal: sequential,
		ParallelTotal:   parallel,
		SavingsPercent:  savings,
	}
}
