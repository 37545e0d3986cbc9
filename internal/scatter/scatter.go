// Package scatter instances one object onto every vertex of a mesh with
// randomized rotation and scale, optionally aligning each instance to the
// surface. All scene access goes through the host contracts.
package scatter

import (
	"errors"
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/vertex-scatter/internal/logger"
	"github.com/Faultbox/vertex-scatter/pkg/host"
	"github.com/Faultbox/vertex-scatter/pkg/math"
)

// State is a step of a scatter run.
type State int32

const (
	StateIdle State = iota
	StateValidating
	StatePlacing
	StateDone
	StateAborted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateValidating:
		return "Validating"
	case StatePlacing:
		return "Placing"
	case StateDone:
		return "Done"
	case StateAborted:
		return "Aborted"
	default:
		return fmt.Sprintf("Unknown(%d)", int32(s))
	}
}

// Placement records what happened at one vertex.
type Placement struct {
	Vertex   host.VertexID
	Instance host.ObjectID
	Position math.Vec3

	Rotation math.Vec3 // degrees, relative
	Scale    float64   // relative, uniform

	Aligned       bool
	AlignFallback bool // alignment was degenerate; world matrix reset to identity at Position
	Deleted       bool // removed again by preview
}

// Result summarizes a run.
type Result struct {
	Run        uuid.UUID // tags every log entry of the run
	State      State
	Placements []Placement
	Skipped    []host.VertexID

	Created int // instances created, including ones deleted later
	Deleted int // instances deleted by preview, skip or rollback
}

// Net returns how many instances the run left in the scene.
func (r Result) Net() int {
	return r.Created - r.Deleted
}

// Scatterer runs the placement pass against a host. The zero value is not
// usable; set Query, Normals and Mutator.
type Scatterer struct {
	Query   host.MeshQuery
	Normals host.FaceNormals
	Mutator host.Mutator

	// Log defaults to the package logger.
	Log *zap.Logger

	state   atomic.Int32
	running atomic.Bool
}

// New returns a Scatterer using one host for every contract.
func New(h host.Scene, log *zap.Logger) *Scatterer {
	return &Scatterer{Query: h, Normals: h, Mutator: h, Log: log}
}

// State returns the state of the current or last run.
func (s *Scatterer) State() State {
	return State(s.state.Load())
}

func (s *Scatterer) log() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return logger.Log
}

func (s *Scatterer) transition(to State) {
	from := State(s.state.Swap(int32(to)))
	s.log().Debug("scatter state", zap.Stringer("from", from), zap.Stringer("to", to))
}

// run is the bookkeeping of one Run call.
type run struct {
	pair   SelectionPair
	cfg    Config
	jitter *Jitter
	result Result
	live   []host.ObjectID // created and not yet deleted
}

// Run scatters pair.Source onto every vertex of pair.Target.
//
// Nothing is created when validation fails. If the host fails mid-run,
// every instance created by this run is deleted before the error is
// returned. With cfg.PreviewOnly each instance is removed right after its
// jitter is applied, so the scene ends as it started.
func (s *Scatterer) Run(pair SelectionPair, cfg Config) (Result, error) {
	if !s.running.CompareAndSwap(false, true) {
		return Result{State: s.State()}, ErrBusy
	}
	defer s.running.Store(false)

	id := uuid.New()
	log := s.log().With(
		zap.Stringer("run", id),
		zap.String("source", string(pair.Source)),
		zap.String("target", string(pair.Target)))

	s.transition(StateIdle)
	s.transition(StateValidating)

	verts, count, err := s.validate(pair, cfg)
	if err != nil {
		s.transition(StateAborted)
		log.Error("scatter aborted", zap.Error(err))
		return Result{Run: id, State: StateAborted}, err
	}

	s.transition(StatePlacing)
	log.Info("scattering",
		zap.Int("vertices", count),
		zap.Bool("align", cfg.AlignToSurface),
		zap.Bool("preview", cfg.PreviewOnly))

	r := &run{
		pair:   pair,
		cfg:    cfg,
		jitter: NewJitter(cfg, NewSource(cfg.Seed)),
	}
	r.result.Run = id
	r.result.Placements = make([]Placement, 0, count)

	for v := range verts {
		if err := s.placeVertex(r, v, log); err != nil {
			err = multierr.Append(err, s.rollback(r))
			r.result.State = StateAborted
			s.transition(StateAborted)
			log.Error("scatter failed, rolled back",
				zap.Stringer("vertex", v),
				zap.Int("deleted", r.result.Deleted),
				zap.Error(err))
			return r.result, err
		}
	}

	r.result.State = StateDone
	s.transition(StateDone)
	log.Info("scatter done",
		zap.Int("created", r.result.Created),
		zap.Int("kept", r.result.Net()),
		zap.Int("skipped", len(r.result.Skipped)))
	return r.result, nil
}

func (s *Scatterer) validate(pair SelectionPair, cfg Config) (iter.Seq[host.VertexID], int, error) {
	if err := cfg.Validate(); err != nil {
		return nil, 0, err
	}
	if kind := s.Query.Kind(pair.Source); kind != host.KindTransform {
		return nil, 0, fmt.Errorf("%w: source %q is %s, please ensure the object you select is a transform",
			ErrInvalidMesh, pair.Source, kind)
	}
	return Vertices(s.Query, pair.Target)
}

// placeVertex runs placement, alignment and jitter for one vertex.
func (s *Scatterer) placeVertex(r *run, v host.VertexID, log *zap.Logger) error {
	inst, pos, err := Place(s.Mutator, s.Query, r.pair.Source, v)
	if inst != "" {
		r.result.Created++
		r.live = append(r.live, inst)
	}
	if err != nil {
		return err
	}

	p := Placement{Vertex: v, Instance: inst, Position: pos}

	if r.cfg.AlignToSurface {
		frame, err := SurfaceFrame(s.Query, s.Normals, v)
		switch {
		case errors.Is(err, ErrAlignmentDegenerate):
			log.Warn("cannot align to surface", zap.Stringer("vertex", v),
				zap.Stringer("policy", r.cfg.Degenerate), zap.Error(err))
			if r.cfg.Degenerate == DegenerateSkip {
				r.result.Skipped = append(r.result.Skipped, v)
				return s.remove(r, inst)
			}
			if err := s.Mutator.SetWorldMatrix(inst, math.Translate(pos)); err != nil {
				return fmt.Errorf("resetting %s: %w", inst, err)
			}
			p.AlignFallback = true
		case err != nil:
			return err
		default:
			if err := s.Mutator.SetWorldMatrix(inst, frame.Matrix(pos)); err != nil {
				return fmt.Errorf("aligning %s: %w", inst, err)
			}
			p.Aligned = true
		}
	}

	p.Rotation, p.Scale, err = r.jitter.Apply(s.Mutator, inst)
	if err != nil {
		return fmt.Errorf("jitter on %s: %w", inst, err)
	}

	if r.cfg.PreviewOnly {
		if err := s.remove(r, inst); err != nil {
			return err
		}
		p.Deleted = true
	}

	r.result.Placements = append(r.result.Placements, p)
	return nil
}

// remove deletes a live instance created by this run.
func (s *Scatterer) remove(r *run, inst host.ObjectID) error {
	if err := s.Mutator.Delete(inst); err != nil {
		return fmt.Errorf("deleting %s: %w", inst, err)
	}
	r.result.Deleted++
	for i, id := range r.live {
		if id == inst {
			r.live = append(r.live[:i], r.live[i+1:]...)
			break
		}
	}
	return nil
}

// rollback deletes every live instance, newest first.
func (s *Scatterer) rollback(r *run) error {
	var errs error
	for i := len(r.live) - 1; i >= 0; i-- {
		inst := r.live[i]
		if err := s.Mutator.Delete(inst); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("rollback %s: %w", inst, err))
			continue
		}
		r.result.Deleted++
	}
	r.live = nil
	return errs
}
