package export_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ncpeek/internal/config"
	"github.com/san-kum/ncpeek/internal/dataset"
	"github.com/san-kum/ncpeek/internal/dataset/datasettest"
	"github.com/san-kum/ncpeek/internal/export"
	"github.com/san-kum/ncpeek/internal/pipeline"
	"github.com/san-kum/ncpeek/internal/scale"
	"github.com/san-kum/ncpeek/internal/slice"
)

func openFile(path string) *dataset.File {
	f, err := dataset.Open(path)
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(f.Close)
	return f
}

var _ = Describe("Converter", func() {
	var (
		dir string
		ctx context.Context
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		ctx = context.Background()
	})

	Context("with a yearly time axis", func() {
		var f *dataset.File

		BeforeEach(func() {
			years := make([]int32, 94)
			for i := range years {
				years[i] = int32(i)
			}
			f = openFile(datasettest.Write(GinkgoT(), dir, "years.nc", datasettest.Fixture{
				Vars: []datasettest.Var{{
					Name: "time", Dims: []string{"time"}, Values: years,
					Attrs: []datasettest.Attr{{Name: "units", Value: "years since 2006-01-01"}},
				}},
			}))
		})

		It("remaps time offsets to calendar years", func() {
			c := &export.Converter{File: f, TimeDim: "time", TimeIndex: 0}
			docs, err := c.Documents(ctx)
			Expect(err).NotTo(HaveOccurred())

			var buf bytes.Buffer
			Expect(export.WriteCSV(&buf, docs, "time", 2006)).To(Succeed())

			want := []string{"time"}
			for y := 2006; y <= 2099; y++ {
				want = append(want, strconv.Itoa(y))
			}
			Expect(buf.String()).To(Equal(strings.Join(want, ",") + "\n"))
		})

		It("leaves values alone without an offset", func() {
			c := &export.Converter{File: f, TimeDim: "time"}
			docs, err := c.Documents(ctx)
			Expect(err).NotTo(HaveOccurred())

			var buf bytes.Buffer
			Expect(export.WriteCSV(&buf, docs, "time", 0)).To(Succeed())
			Expect(buf.String()).To(HavePrefix("time,0,1,2,"))
			Expect(buf.String()).To(HaveSuffix(",93\n"))
		})
	})

	Context("with a gridded variable", func() {
		var (
			path string
			f    *dataset.File
		)

		BeforeEach(func() {
			path = datasettest.Grid(GinkgoT(), dir, 2, 4, 6)
			f = openFile(path)
		})

		It("cuts data variables to one time step", func() {
			c := &export.Converter{File: f, TimeDim: "time", TimeIndex: 1}
			docs, err := c.Documents(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(docs).To(HaveLen(4))

			byName := map[string]export.Document{}
			for _, d := range docs {
				byName[d.Variable] = d
			}
			Expect(byName["time"].Shape).To(Equal([]int{2}))
			Expect(byName["tas"].Shape).To(Equal([]int{1, 4, 6}))
			Expect(byName["tas"].Dimensions[0]).To(Equal(export.Dimension{Name: "time", Length: 1}))
			Expect(byName["tas"].Data[0]).To(BeNumerically("==", datasettest.Value(1, 0, 0)))
			Expect(byName["tas"].Attributes).To(HaveKeyWithValue("units", "K"))
		})

		It("reads every time step when asked", func() {
			c := &export.Converter{File: f, TimeDim: "time", TimeIndex: config.AllTimes}
			docs, err := c.Documents(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(docs[3].Shape).To(Equal([]int{2, 4, 6}))
			Expect(docs[3].Data).To(HaveLen(48))
		})

		It("writes a JSON document next to the input", func() {
			out := export.DefaultPath(path, ".json")
			Expect(out).To(Equal(filepath.Join(dir, "grid.json")))

			c := &export.Converter{File: f, TimeDim: "time", TimeIndex: 0}
			Expect(c.Convert(ctx, out, "json")).To(Succeed())

			data, err := os.ReadFile(out)
			Expect(err).NotTo(HaveOccurred())
			var docs []map[string]any
			Expect(json.Unmarshal(data, &docs)).To(Succeed())
			Expect(docs).To(HaveLen(4))
			Expect(docs[0]).To(HaveKey("attributes"))
			Expect(docs[3]["variable"]).To(Equal("tas"))
		})

		It("rejects unknown formats before writing", func() {
			out := filepath.Join(dir, "out.xml")
			c := &export.Converter{File: f, TimeDim: "time"}
			Expect(c.Convert(ctx, out, "xml")).To(MatchError(export.ErrUnknownFormat))
			Expect(out).NotTo(BeAnExistingFile())
		})

		It("builds a glyph grid for a box", func() {
			p, err := pipeline.New(f, config.DefaultConfig(), slice.Target{Columns: 80, Rows: 24}, nil)
			Expect(err).NotTo(HaveOccurred())

			box := slice.Box{Lat: slice.Span{Start: 0, End: 2}, Lon: slice.Span{Start: 0, End: 3}}
			doc, err := export.BuildGrid(ctx, p, box, 0, scale.DefaultTicks, scale.DefaultGlyphs())
			Expect(err).NotTo(HaveOccurred())

			Expect(doc.Domain).To(Equal(scale.Domain{Min: 0, Max: 12}))
			Expect(doc.Ticks).To(HaveLen(7))
			Expect(doc.Range).To(Equal([2]float64{0, 7}))
			Expect(doc.Grid).To(HaveLen(2))
			Expect(doc.Grid[0]).To(HaveLen(3))
			Expect(doc.Grid[0][0]).To(Equal("!"))
			Expect(doc.Grid[1][2]).To(Equal(")"))
			Expect(doc.Box.Lon).To(Equal([2]int{0, 3}))

			var buf bytes.Buffer
			Expect(export.WriteGrid(&buf, doc)).To(Succeed())
			Expect(buf.String()).To(ContainSubstring(`"legend"`))
			Expect(buf.String()).NotTo(ContainSubstring(`\u00`))
		})

		It("rejects a box past the grid", func() {
			p, err := pipeline.New(f, config.DefaultConfig(), slice.Target{Columns: 80, Rows: 24}, nil)
			Expect(err).NotTo(HaveOccurred())
			box := slice.Box{Lat: slice.Span{Start: 0, End: 5}, Lon: slice.Span{Start: 0, End: 3}}
			_, err = export.BuildGrid(ctx, p, box, 0, scale.DefaultTicks, scale.DefaultGlyphs())
			Expect(err).To(MatchError(slice.ErrOutOfBounds))
		})
	})
})

var _ = Describe("WriteFile", func() {
	It("reports an unwritable path as OutputWriteError", func() {
		path := filepath.Join(GinkgoT().TempDir(), "missing", "out.json")
		err := export.WriteFile(path, func(w io.Writer) error {
			_, err := w.Write([]byte("{}"))
			return err
		})
		var owe *export.OutputWriteError
		Expect(errors.As(err, &owe)).To(BeTrue())
		Expect(owe.Path).To(Equal(path))
	})

	It("leaves the target untouched when assembly fails", func() {
		path := filepath.Join(GinkgoT().TempDir(), "out.json")
		Expect(os.WriteFile(path, []byte("old"), 0644)).To(Succeed())

		boom := errors.New("boom")
		Expect(export.WriteFile(path, func(w io.Writer) error { return boom })).To(MatchError(boom))

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("old"))
		entries, _ := os.ReadDir(filepath.Dir(path))
		Expect(entries).To(HaveLen(1))
	})

	It("replaces the target on success", func() {
		path := filepath.Join(GinkgoT().TempDir(), "out.csv")
		Expect(export.WriteFile(path, func(w io.Writer) error {
			_, err := w.Write([]byte("a,1\n"))
			return err
		})).To(Succeed())
		Expect(os.ReadFile(path)).To(Equal([]byte("a,1\n")))
	})
})

var _ = Describe("Values", func() {
	It("encodes non-finite values as null", func() {
		data, err := json.Marshal(export.Values{1.5, math.NaN(), math.Inf(1), -2})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("[1.5,null,null,-2]"))
	})
})
