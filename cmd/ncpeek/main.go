package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ncpeek/internal/anim"
	"github.com/san-kum/ncpeek/internal/config"
	"github.com/san-kum/ncpeek/internal/dataset"
	"github.com/san-kum/ncpeek/internal/export"
	"github.com/san-kum/ncpeek/internal/inspect"
	"github.com/san-kum/ncpeek/internal/pipeline"
	"github.com/san-kum/ncpeek/internal/render"
	"github.com/san-kum/ncpeek/internal/scale"
	"github.com/san-kum/ncpeek/internal/series"
	"github.com/san-kum/ncpeek/internal/slice"
	"github.com/san-kum/ncpeek/internal/viz"
)

const (
	fallbackColumns = 80
	fallbackRows    = 24
)

var (
	// Config sources
	configFile string
	profile    string
	logLevel   string
	// Settings mirrored in config.Config
	variable   string
	colormap   string
	exclude    []string
	margin     int
	ticks      int
	glyphBase  int
	timeDim    string
	latDim     string
	lonDim     string
	domainMode string
	yearOffset int
	timeIndex  int
	output     string
	// Rendering surface overrides
	columns int
	rows    int
	// Command options
	verbose      bool
	symbols      bool
	format       string
	latSpan      string
	lonSpan      string
	seriesHeight int
)

var (
	log        = logrus.New()
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
	savedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#00aa00"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "ncpeek",
		Short:         "inspect, preview and convert NetCDF files in the terminal",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetOutput(os.Stderr)
			log.SetLevel(level)
			log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&profile, "profile", "", "apply a named profile (see: ncpeek profiles)")
	pf.StringVar(&logLevel, "log-level", "warn", "log level")
	pf.StringVar(&variable, "variable", "", "variable to show (default: first data variable)")
	pf.StringVar(&colormap, "colormap", config.DefaultColormap, "colormap: "+strings.Join(render.ColormapNames(), ", "))
	pf.StringSliceVar(&exclude, "exclude", nil, "treat values matching these predicates as missing: nonpositive, nonfinite")
	pf.IntVar(&margin, "margin", config.DefaultMargin, "terminal rows kept free below the frame (animate in a terminal keeps at least 4)")
	pf.IntVar(&ticks, "ticks", config.DefaultTicks, "tick target for glyph buckets")
	pf.IntVar(&glyphBase, "glyph-base", config.DefaultGlyphBase, "character code of the first glyph")
	pf.StringVar(&timeDim, "time-dim", "time", "name of the time dimension")
	pf.StringVar(&latDim, "lat-dim", "lat", "name of the latitude dimension")
	pf.StringVar(&lonDim, "lon-dim", "lon", "name of the longitude dimension")
	pf.IntVar(&columns, "columns", 0, "override terminal columns")
	pf.IntVar(&rows, "rows", 0, "override terminal rows")

	inspectCmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "print attributes, dimensions and variables",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include root section and shapes")

	previewCmd := &cobra.Command{
		Use:   "preview [file] [time]",
		Short: "render one time step",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runPreview,
	}
	previewCmd.Flags().BoolVar(&symbols, "symbols", false, "draw glyphs instead of colours")

	animateCmd := &cobra.Command{
		Use:   "animate [file]",
		Short: "render every time step in place",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnimate,
	}
	animateCmd.Flags().StringVar(&domainMode, "domain", config.DomainPinned,
		"colour domain: pinned (shared by all frames, avoids colour drift) or frame (recomputed per frame)")
	animateCmd.Flags().BoolVar(&symbols, "symbols", false, "draw glyphs instead of colours")

	convertCmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "extract every variable to JSON or CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}
	convertCmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: input with .json or .csv)")
	convertCmd.Flags().StringVar(&format, "format", export.FormatJSON, "json or csv")
	convertCmd.Flags().IntVar(&yearOffset, "year-offset", 0, "add to time values in csv output (years since Y)")
	convertCmd.Flags().IntVar(&timeIndex, "time-index", 0, "time step of data variables, -1 for all")

	gridCmd := &cobra.Command{
		Use:   "grid [file]",
		Short: "write a bounding box as a glyph grid",
		Args:  cobra.ExactArgs(1),
		RunE:  runGrid,
	}
	gridCmd.Flags().StringVarP(&output, "output", "o", "", "output path, - for stdout (default: input with .grid.json)")
	gridCmd.Flags().IntVar(&timeIndex, "time-index", 0, "time step")
	gridCmd.Flags().StringVar(&latSpan, "lat", "", "latitude index range start:end (default: all)")
	gridCmd.Flags().StringVar(&lonSpan, "lon", "", "longitude index range start:end (default: all)")

	seriesCmd := &cobra.Command{
		Use:   "series [file]",
		Short: "plot the spatial mean over time",
		Args:  cobra.ExactArgs(1),
		RunE:  runSeries,
	}
	seriesCmd.Flags().IntVar(&seriesHeight, "height", 10, "plot height")

	viewCmd := &cobra.Command{
		Use:   "view [file]",
		Short: "step through time interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}
	viewCmd.Flags().StringVar(&domainMode, "domain", config.DomainPinned, "colour domain: pinned or frame")

	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "list configuration profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEXCLUDE\tYEAR OFFSET\tCOLORMAP\tDESCRIPTION")
			for _, name := range config.ListProfiles() {
				p, _ := config.GetProfile(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", name, strings.Join(p.Exclude, ","), p.YearOffset, p.Colormap, p.Description)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "print or save the effective configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfig,
	}

	rootCmd.AddCommand(inspectCmd, previewCmd, animateCmd, convertCmd, gridCmd, seriesCmd, viewCmd, profilesCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file, the profile and explicitly
// set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if profile != "" {
		p, ok := config.GetProfile(profile)
		if !ok {
			return nil, fmt.Errorf("unknown profile: %s (available: %v)", profile, config.ListProfiles())
		}
		cfg = p.Apply(cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("variable") {
		cfg.Variable = variable
	}
	if flags.Changed("colormap") {
		cfg.Colormap = colormap
	}
	if flags.Changed("exclude") {
		cfg.Exclude = exclude
	}
	if flags.Changed("margin") {
		cfg.Margin = margin
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("glyph-base") {
		cfg.GlyphBase = glyphBase
	}
	if flags.Changed("time-dim") {
		cfg.Dims.Time = timeDim
	}
	if flags.Changed("lat-dim") {
		cfg.Dims.Lat = latDim
	}
	if flags.Changed("lon-dim") {
		cfg.Dims.Lon = lonDim
	}
	if flags.Changed("domain") {
		cfg.Domain = domainMode
	}
	if flags.Changed("year-offset") {
		cfg.YearOffset = yearOffset
	}
	if flags.Changed("time-index") {
		cfg.TimeIndex = timeIndex
	}
	if flags.Changed("output") {
		cfg.Output = output
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// target sizes frames to the terminal, 80x24 when stdout is not one.
func target(cfg *config.Config) slice.Target {
	w, h := fallbackColumns, fallbackRows
	if term.IsTerminal(os.Stdout.Fd()) {
		if tw, th, err := term.GetSize(os.Stdout.Fd()); err == nil && tw > 0 && th > 0 {
			w, h = tw, th
		}
	}
	if columns > 0 {
		w = columns
	}
	if rows > 0 {
		h = rows
	}
	return slice.Target{Columns: w, Rows: h, Margin: cfg.Margin}
}

func glyphs(cfg *config.Config) scale.Glyphs {
	return scale.NewGlyphs(rune(cfg.GlyphBase), scale.GlyphQuote, scale.GlyphBackslash)
}

func renderer(w io.Writer, cfg *config.Config) (*render.Renderer, error) {
	cm, err := render.GetColormap(cfg.Colormap)
	if err != nil {
		return nil, err
	}
	return render.NewRenderer(w, cm), nil
}

// openPipeline opens path and binds the configured variable. The caller
// closes the returned file.
func openPipeline(cmd *cobra.Command, path string) (*config.Config, *dataset.File, *pipeline.Pipeline, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	f, err := dataset.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := pipeline.New(f, cfg, target(cfg), log.WithField("file", path))
	if err != nil {
		f.Close()
		return nil, nil, nil, err
	}
	return cfg, f, p, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd); err != nil {
		return err
	}
	f, err := dataset.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	return inspect.NewPrinter(cmd.OutOrStdout(), verbose).Print(f)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, f, p, err := openPipeline(cmd, args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	t := 0
	if len(args) > 1 {
		t, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid time index %q: %w", args[1], err)
		}
	}
	r, err := renderer(cmd.OutOrStdout(), cfg)
	if err != nil {
		return err
	}

	var fr render.Frame
	if symbols {
		fr, err = p.SymbolFrame(cmd.Context(), r, t, nil, cfg.Ticks, glyphs(cfg))
	} else {
		fr, err = p.Frame(cmd.Context(), r, t, nil)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), fr.String())
	return err
}

// frameFunc renders with the pinned domain when the config asks for it.
func frameFunc(ctx context.Context, cfg *config.Config, p *pipeline.Pipeline, r *render.Renderer) (anim.RenderFunc, error) {
	var pinned *scale.Domain
	if cfg.PinDomain() {
		d, err := p.PinnedDomain(ctx)
		if err != nil {
			return nil, err
		}
		pinned = &d
	}
	return func(ctx context.Context, t int) (render.Frame, error) {
		if symbols {
			return p.SymbolFrame(ctx, r, t, pinned, cfg.Ticks, glyphs(cfg))
		}
		return p.Frame(ctx, r, t, pinned)
	}, nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	cfg, f, p, err := openPipeline(cmd, args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	out := cmd.OutOrStdout()
	inPlace := term.IsTerminal(os.Stdout.Fd())
	if inPlace {
		p.Target = anim.InPlaceTarget(p.Target)
	}
	r, err := renderer(out, cfg)
	if err != nil {
		return err
	}
	fn, err := frameFunc(cmd.Context(), cfg, p, r)
	if err != nil {
		return err
	}
	d := &anim.Driver{
		Out:     out,
		Frames:  p.Frames(),
		Render:  fn,
		InPlace: inPlace,
		Log:     p.Log,
	}
	return d.Run(cmd.Context())
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, f, p, err := openPipeline(cmd, args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := renderer(os.Stdout, cfg)
	if err != nil {
		return err
	}
	fn, err := frameFunc(cmd.Context(), cfg, p, r)
	if err != nil {
		return err
	}
	return viz.Run(cmd.Context(), viz.NewModel(cmd.Context(), p.Frames(), viz.FrameFunc(fn)))
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, err := dataset.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	out := cfg.Output
	if out == "" {
		out = export.DefaultPath(args[0], "."+strings.ToLower(format))
	}
	c := &export.Converter{
		File:       f,
		TimeDim:    cfg.Dims.Time,
		TimeIndex:  cfg.TimeIndex,
		YearOffset: cfg.YearOffset,
		Log:        log.WithField("file", args[0]),
	}
	if err := c.Convert(cmd.Context(), out, format); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), savedStyle.Render(" Saved to "+out+" "))
	return nil
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg, f, p, err := openPipeline(cmd, args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	box := p.Coord.FullBox()
	if box.Lat, err = parseSpan(latSpan, box.Lat); err != nil {
		return err
	}
	if box.Lon, err = parseSpan(lonSpan, box.Lon); err != nil {
		return err
	}
	t := max(cfg.TimeIndex, 0)
	doc, err := export.BuildGrid(cmd.Context(), p, box, t, cfg.Ticks, glyphs(cfg))
	if err != nil {
		return err
	}

	out := cfg.Output
	if out == "-" {
		return export.WriteGrid(cmd.OutOrStdout(), doc)
	}
	if out == "" {
		out = export.DefaultPath(args[0], ".grid.json")
	}
	if err := export.WriteFile(out, func(w io.Writer) error { return export.WriteGrid(w, doc) }); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), savedStyle.Render(" Saved to "+out+" "))
	return nil
}

// parseSpan reads "start:end"; either side may be empty to keep def's bound.
func parseSpan(s string, def slice.Span) (slice.Span, error) {
	if s == "" {
		return def, nil
	}
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return slice.Span{}, fmt.Errorf("invalid range %q (want start:end)", s)
	}
	span := def
	var err error
	if lo != "" {
		if span.Start, err = strconv.Atoi(lo); err != nil {
			return slice.Span{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
	}
	if hi != "" {
		if span.End, err = strconv.Atoi(hi); err != nil {
			return slice.Span{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
	}
	return span, nil
}

func runSeries(cmd *cobra.Command, args []string) error {
	cfg, f, p, err := openPipeline(cmd, args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	means, err := series.Means(cmd.Context(), p)
	if err != nil {
		return err
	}
	width := max(target(cfg).Columns-12, 10)
	caption := "mean " + p.Variable.Title()
	fmt.Fprintln(cmd.OutOrStdout(), series.Plot(means, caption, width, seriesHeight))
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		return config.Save(args[0], cfg)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
