// Package pipeline runs the single-frame path for one variable:
// plan, read, mask, scale and render.
package pipeline

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/ncpeek/internal/config"
	"github.com/san-kum/ncpeek/internal/dataset"
	"github.com/san-kum/ncpeek/internal/mask"
	"github.com/san-kum/ncpeek/internal/render"
	"github.com/san-kum/ncpeek/internal/scale"
	"github.com/san-kum/ncpeek/internal/slice"
)

// Pipeline is bound to one variable of an open file.
type Pipeline struct {
	Variable *dataset.Variable
	Coord    *slice.Coordinator
	Reader   *slice.Reader
	Filter   *mask.Filter
	Target   slice.Target
	Log      logrus.FieldLogger
}

// New selects the configured variable (the first data-bearing one when none
// is named) and prepares its read path.
func New(f *dataset.File, cfg *config.Config, target slice.Target, log logrus.FieldLogger) (*Pipeline, error) {
	v, err := f.DataVariable(cfg.Variable)
	if err != nil {
		return nil, err
	}
	src, err := f.Source(v)
	if err != nil {
		return nil, err
	}
	coord, err := slice.NewCoordinator(v, cfg.DimNames())
	if err != nil {
		return nil, err
	}
	filter, err := mask.FromNames(v.Attributes, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		Variable: v,
		Coord:    coord,
		Reader:   slice.NewReader(v, src),
		Filter:   filter,
		Target:   target,
		Log:      log.WithField("variable", v.Name),
	}, nil
}

// Frames is the number of time steps.
func (p *Pipeline) Frames() int { return p.Coord.TimeLength() }

// FrameSize is the grid size of every fitted frame.
func (p *Pipeline) FrameSize() (width, height int) { return p.Coord.FrameSize(p.Target) }

// Sample reads the frame at time index t fitted to the target.
func (p *Pipeline) Sample(ctx context.Context, t int) (*slice.Grid, error) {
	plan, err := p.Coord.Fit(p.Target, t)
	if err != nil {
		return nil, err
	}
	return p.read(ctx, plan)
}

// BoxSample reads b at full resolution at time index t.
func (p *Pipeline) BoxSample(ctx context.Context, b slice.Box, t int) (*slice.Grid, error) {
	plan, err := p.Coord.Box(b, t)
	if err != nil {
		return nil, err
	}
	return p.read(ctx, plan)
}

func (p *Pipeline) read(ctx context.Context, plan slice.Plan) (*slice.Grid, error) {
	p.Log.WithField("plan", plan.String()).Debug("reading")
	g, err := p.Reader.Read(ctx, plan)
	if err != nil {
		return nil, err
	}
	p.Filter.Apply(g)
	return g, nil
}

// Domain is the extent of the valid cells of g. An empty grid falls back to
// the default domain with a warning.
func (p *Pipeline) Domain(g *slice.Grid) scale.Domain {
	d, err := scale.Extent(g.Valid())
	if errors.Is(err, scale.ErrEmptyDomain) {
		p.Log.WithFields(logrus.Fields{
			"min": d.Min,
			"max": d.Max,
		}).Warn(err)
	}
	return d
}

// PinnedDomain is the extent over every time step at the fitted resolution.
func (p *Pipeline) PinnedDomain(ctx context.Context) (scale.Domain, error) {
	var (
		d     scale.Domain
		found bool
	)
	for t := 0; t < p.Frames(); t++ {
		g, err := p.Sample(ctx, t)
		if err != nil {
			return scale.Domain{}, err
		}
		fd, err := scale.Extent(g.Valid())
		if err != nil {
			continue
		}
		if !found {
			d, found = fd, true
			continue
		}
		d = d.Union(fd)
	}
	if !found {
		p.Log.WithField("frames", p.Frames()).Warn(scale.ErrEmptyDomain)
		return scale.DefaultDomain, nil
	}
	return d, nil
}

// Frame renders time index t. A nil pinned domain uses the frame's own
// extent.
func (p *Pipeline) Frame(ctx context.Context, r *render.Renderer, t int, pinned *scale.Domain) (render.Frame, error) {
	g, err := p.Sample(ctx, t)
	if err != nil {
		return render.Frame{}, err
	}
	d := p.domainFor(g, pinned)
	return r.Frame(p.Variable.Title(), t, g, d), nil
}

// SymbolFrame renders time index t as glyphs.
func (p *Pipeline) SymbolFrame(ctx context.Context, r *render.Renderer, t int, pinned *scale.Domain, ticks int, glyphs scale.Glyphs) (render.Frame, error) {
	g, err := p.Sample(ctx, t)
	if err != nil {
		return render.Frame{}, err
	}
	b := scale.NewBuckets(p.domainFor(g, pinned), ticks)
	return r.SymbolFrame(p.Variable.Title(), t, g, b, glyphs), nil
}

func (p *Pipeline) domainFor(g *slice.Grid, pinned *scale.Domain) scale.Domain {
	if pinned != nil {
		return *pinned
	}
	return p.Domain(g)
}
