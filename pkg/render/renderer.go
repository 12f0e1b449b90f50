package render

import (
	"github.com/sgostarter/i/l"

	"github.com/ha1tch/profile-toolkit/pkg/profile"
	"github.com/ha1tch/profile-toolkit/pkg/style"
)

// Renderer resolves styles and turns pathways into output files. It holds
// no per-render state and may be reused.
type Renderer struct {
	table  *style.Table
	logger l.Wrapper
}

// NewRenderer creates a renderer over a preset table. A nil table means
// the built-in presets, a nil logger discards output.
func NewRenderer(table *style.Table, logger l.Wrapper) *Renderer {
	if table == nil {
		table = style.DefaultTable()
	}
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}
	return &Renderer{
		table:  table,
		logger: logger.WithFields(l.StringField(l.ClsKey, "Renderer")),
	}
}

// Options builds the options for a preset plus per-call overrides.
func (r *Renderer) Options(name string, overrides map[string]any) (style.Options, error) {
	o, err := r.table.Build(name, overrides)
	if err != nil {
		r.logger.WithFields(l.ErrorField(err), l.StringField("style", name)).Error("build style failed")
		return o, err
	}
	r.logger.WithFields(l.StringField("style", name), l.IntField("overrides", len(overrides))).Debug("style resolved")
	if a, ok := overrides["axes"].(string); ok && style.ParseAxes(a) != style.Axes(a) {
		r.logger.WithFields(l.StringField("axes", a)).Debug("unknown axes, drawing none")
	}
	return o, nil
}

// Layout lays out pathways and logs a summary.
func (r *Renderer) Layout(pathways []profile.Pathway, o style.Options) (*Diagram, error) {
	d, err := Layout(pathways, o)
	if err != nil {
		r.logger.WithFields(l.ErrorField(err), l.IntField("pathways", len(pathways))).Error("layout failed")
		return nil, err
	}
	for i, coords := range d.Coords {
		if len(coords) == 0 {
			r.logger.WithFields(l.StringField("pathway", d.Pathways[i].Name)).Debug("pathway has no energies")
		}
	}
	r.logger.WithFields(
		l.IntField("pathways", len(d.Pathways)),
		l.IntField("points", d.PointCount()),
		l.IntField("curves", len(d.Strokes)),
		l.IntField("labels", len(d.Labels)),
	).Debug("layout done")
	return d, nil
}

// Render lays out pathways and saves them to filename.<format>, returning
// the path written.
func (r *Renderer) Render(pathways []profile.Pathway, o style.Options, filename string) (string, error) {
	if !ValidFormat(o.Format) {
		return "", ErrUnknownFormat
	}
	d, err := r.Layout(pathways, o)
	if err != nil {
		return "", err
	}
	path := filename + "." + o.Format
	if err := d.Save(path, o.Format); err != nil {
		r.logger.WithFields(l.ErrorField(err), l.StringField("path", path)).Error("save failed")
		return "", err
	}
	r.logger.WithFields(l.StringField("path", path), l.StringField("format", o.Format)).Info("profile written")
	return path, nil
}
