// Package anim plays frames over a time dimension.
package anim

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/ncpeek/internal/render"
	"github.com/san-kum/ncpeek/internal/slice"
)

// RenderFunc produces the frame for time index t.
type RenderFunc func(ctx context.Context, t int) (render.Frame, error)

// Driver renders Frames frames in order, one per time index. With InPlace
// set each frame but the last is followed by a cursor move back to the
// first header line, so the next frame overwrites it.
type Driver struct {
	Out     io.Writer
	Frames  int
	Render  RenderFunc
	InPlace bool
	Log     logrus.FieldLogger
}

// Run stops at the first failing frame. Cancellation is checked before
// each frame.
func (d *Driver) Run(ctx context.Context) error {
	log := d.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	for t := 0; t < d.Frames; t++ {
		if err := ctx.Err(); err != nil {
			log.WithField("frame", t).Debug("animation canceled")
			return err
		}
		f, err := d.Render(ctx, t)
		if err != nil {
			return err
		}
		out := f.String()
		if d.InPlace && t < d.Frames-1 {
			out += Rewind(f)
		}
		if _, err := io.WriteString(d.Out, out); err != nil {
			return fmt.Errorf("write frame %d: %w", t, err)
		}
		log.WithFields(logrus.Fields{
			"frame":  t,
			"width":  f.Width,
			"height": f.Height,
		}).Debug("frame written")
	}
	return nil
}

// Rewind moves the cursor from below f back to its first line.
func Rewind(f render.Frame) string {
	return ansi.CursorUp(f.Height+render.HeaderLines) + ansi.CursorBackward(f.Width)
}

// InPlaceTarget reserves enough rows for the header lines and the cursor
// line below a frame, so rewinding never scrolls the terminal.
func InPlaceTarget(t slice.Target) slice.Target {
	t.Margin = max(t.Margin, render.HeaderLines+1)
	return t
}
