// Package schedule turns a dependency graph into an executable plan:
// conflict-free layers in dependency order, stability checkpoints, and a
// wall-clock estimate against naive sequential execution.
package schedule

import (
	"time"

	"github.com/waveplan/waveplan/internal/graph"
	"github.com/waveplan/waveplan/internal/task"
)

// Layer is a set of tasks the executor may dispatch concurrently. Every
// dependency of a layer-N task lives in a layer < N, and no two members
// conflict.
type Layer struct {
	Index    int      `json:"index" yaml:"index"`
	TaskIDs  []string `json:"tasks" yaml:"tasks"`
	Duration float64  `json:"duration" yaml:"duration"`
}

// Checkpoint is a barrier after AfterLayer: the next layer may not start
// until GatingTask is externally confirmed stable, not merely completed.
type Checkpoint struct {
	AfterLayer    int    `json:"after_layer" yaml:"after_layer"`
	GatingTask    string `json:"gating_task" yaml:"gating_task"`
	DependentTask string `json:"dependent_task" yaml:"dependent_task"`
	Rationale     string `json:"rationale" yaml:"rationale"`
}

type Estimate struct {
	SequentialTotal float64 `json:"sequential_total" yaml:"sequential_total"`
	ParallelTotal   float64 `json:"parallel_total" yaml:"parallel_total"`
	SavingsPercent  float64 `json:"savings_percent" yaml:"savings_percent"`
}

// Plan is the immutable output of one planning run. Re-planning requires
// a fresh run; there is no incremental update.
type Plan struct {
	ID          string       `json:"plan_id" yaml:"plan_id"`
	GeneratedAt time.Time    `json:"generated_at" yaml:"generated_at"`
	Layers      []Layer      `json:"layers" yaml:"layers"`
	Checkpoints []Checkpoint `json:"checkpoints" yaml:"checkpoints"`
	Estimate    Estimate     `json:"estimate" yaml:"estimate"`

	graph *graph.Graph
}

// Graph returns the dependency graph the plan was built from.
func (p *Plan) Graph() *graph.Graph {
	return p.graph
}

// Tasks returns the task records in input order.
func (p *Plan) Tasks() []task.Task {
	return p.graph.Tasks()
}

// LayerOf returns the layer index holding the given task, or -1.
func (p *Plan) LayerOf(id string) int {
	for _, l := range p.Layers {
		for _, tid := range l.TaskIDs {
			if tid == id {
				return l.Index
			}
		}
	}
	return -1
}

// BuildPlan runs the full planning pipeline: field validation, graph
// construction, layering, checkpoint insertion and estimation. Any error
// is a configuration error; no partial plan is ever returned.
func BuildPlan(tasks []task.Task) (*Plan, error) {
	if verrs := task.ValidateTasks(tasks); verrs != nil {
		return nil, verrs
	}

	g, err := graph.Build(tasks)
	if err != nil {
		return nil, err
	}

	layers := Layers(g)
	checkpoints := InsertCheckpoints(layers, g)

	id, err := task.GeneratePlanID()
	if err != nil {
		return nil, err
	}

	return &Plan{
		ID:          id,
		GeneratedAt: time.Now().UTC(),
		Layers:      layers,
		Checkpoints: checkpoints,
		Estimate:    EstimateLayers(layers, g),
		graph:       g,
	}, nil
}
