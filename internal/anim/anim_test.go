package anim_test

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/x/ansi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ncpeek/internal/anim"
	"github.com/san-kum/ncpeek/internal/render"
	"github.com/san-kum/ncpeek/internal/slice"
)

func frame(t int) render.Frame {
	return render.Frame{
		Width:  4,
		Height: 2,
		Lines:  []string{"title", "time: " + string(rune('0'+t)), "legend", "abcd", "efgh"},
	}
}

var _ = Describe("Driver", func() {
	var (
		out   *bytes.Buffer
		calls []int
		fn    anim.RenderFunc
	)

	BeforeEach(func() {
		out = &bytes.Buffer{}
		calls = nil
		fn = func(_ context.Context, t int) (render.Frame, error) {
			calls = append(calls, t)
			return frame(t), nil
		}
	})

	It("renders every time index once, in order", func() {
		d := &anim.Driver{Out: out, Frames: 5, Render: fn}
		Expect(d.Run(context.Background())).To(Succeed())
		Expect(calls).To(Equal([]int{0, 1, 2, 3, 4}))
	})

	It("rewinds between frames but not after the last", func() {
		d := &anim.Driver{Out: out, Frames: 3, Render: fn, InPlace: true}
		Expect(d.Run(context.Background())).To(Succeed())

		rewind := ansi.CursorUp(2+render.HeaderLines) + ansi.CursorBackward(4)
		Expect(strings.Count(out.String(), rewind)).To(Equal(2))
		Expect(out.String()).To(HaveSuffix("efgh\n"))
		Expect(ansi.Strip(out.String())).To(ContainSubstring("time: 2"))
	})

	It("writes frames without cursor movement when not in place", func() {
		d := &anim.Driver{Out: out, Frames: 2, Render: fn}
		Expect(d.Run(context.Background())).To(Succeed())
		Expect(out.String()).To(Equal(frame(0).String() + frame(1).String()))
	})

	It("does nothing for zero frames", func() {
		d := &anim.Driver{Out: out, Frames: 0, Render: fn}
		Expect(d.Run(context.Background())).To(Succeed())
		Expect(calls).To(BeEmpty())
		Expect(out.Len()).To(BeZero())
	})

	It("stops between frames once canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		d := &anim.Driver{Out: out, Frames: 10, Render: func(ctx context.Context, t int) (render.Frame, error) {
			calls = append(calls, t)
			if t == 2 {
				cancel()
			}
			return frame(t), nil
		}}
		Expect(d.Run(ctx)).To(MatchError(context.Canceled))
		Expect(calls).To(Equal([]int{0, 1, 2}))
	})

	It("stops at the first failing frame", func() {
		boom := errors.New("read failed")
		d := &anim.Driver{Out: out, Frames: 4, Render: func(_ context.Context, t int) (render.Frame, error) {
			calls = append(calls, t)
			if t == 1 {
				return render.Frame{}, boom
			}
			return frame(t), nil
		}}
		Expect(d.Run(context.Background())).To(MatchError(boom))
		Expect(calls).To(Equal([]int{0, 1}))
	})
})

var _ = Describe("InPlaceTarget", func() {
	It("keeps a latitude-bound frame and the cursor line on a 24-row screen", func() {
		t := anim.InPlaceTarget(slice.Target{Columns: 80, Rows: 24, Margin: slice.DefaultMargin})
		Expect(t.Margin).To(Equal(render.HeaderLines + 1))

		stride := slice.SharedStride(720, 360, t)
		height := 360 / stride
		Expect(height + render.HeaderLines + 1).To(BeNumerically("<=", t.Rows))
	})

	It("keeps a wider margin", func() {
		t := anim.InPlaceTarget(slice.Target{Columns: 80, Rows: 24, Margin: 6})
		Expect(t.Margin).To(Equal(6))
	})
})
