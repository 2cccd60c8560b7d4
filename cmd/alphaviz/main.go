package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alphaviz/internal/chart"
	"alphaviz/internal/config"
	"alphaviz/internal/dataset"
	"alphaviz/internal/export"
	"alphaviz/internal/loader"
	"alphaviz/internal/logging"
	"alphaviz/internal/player"
	"alphaviz/internal/recorder"
	"alphaviz/internal/render"
)

const playLogFile = "alphaviz.log"

var (
	configFile string
	debug      bool
	preset     string
	// inspect
	inspectBlock float64
	// export
	exportOut    string
	exportStep   float64
	exportFormat string
	// record
	recordOut      string
	recordField    string
	recordFPS      int
	recordSpeed    float64
	recordDuration float64
	// snapshot
	snapshotField  string
	snapshotOut    string
	snapshotWidth  int
	snapshotHeight int
	snapshotStyle  string
	// validate
	strict bool
	// config init
	configOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "alphaviz",
		Short: "animated dashboard for AlphaPoints simulation logs",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")

	playCmd := &cobra.Command{
		Use:   "play [csv]",
		Short: "play the dashboard",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	playCmd.Flags().StringVar(&preset, "preset", "", "playback preset (ignored when --config is set)")

	validateCmd := &cobra.Command{
		Use:   "validate [csv]",
		Short: "check log quality",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runValidate,
	}
	validateCmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero on warnings")

	inspectCmd := &cobra.Command{
		Use:   "inspect [csv]",
		Short: "inspect the dataset at a block position",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().Float64Var(&inspectBlock, "block", 0, "block position (defaults to the first block)")

	exportCmd := &cobra.Command{
		Use:   "export [csv]",
		Short: "export resampled data",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (stdout when omitted)")
	exportCmd.Flags().Float64Var(&exportStep, "step", 0, "block stride (native interval when omitted)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or json")

	recordCmd := &cobra.Command{
		Use:   "record [csv]",
		Short: "record the animation to a gif session",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRecord,
	}
	recordCmd.Flags().StringVarP(&recordOut, "out", "o", ".alphaviz", "recordings directory")
	recordCmd.Flags().StringVar(&recordField, "field", dataset.FieldExchangeRate, "charted metric")
	recordCmd.Flags().IntVar(&recordFPS, "fps", 0, "frames per second (config default when omitted)")
	recordCmd.Flags().Float64Var(&recordSpeed, "speed", 0, "recording speed factor")
	recordCmd.Flags().Float64Var(&recordDuration, "duration", 0, "animation duration in seconds")
	recordCmd.Flags().StringVar(&preset, "preset", "", "playback preset (ignored when --config is set)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [csv]",
		Short: "render one metric as an svg poster",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVar(&snapshotField, "field", dataset.FieldExchangeRate, "metric to render")
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "snapshot.svg", "output file")
	snapshotCmd.Flags().IntVar(&snapshotWidth, "width", 800, "image width in pixels")
	snapshotCmd.Flags().IntVar(&snapshotHeight, "height", 400, "image height in pixels")
	snapshotCmd.Flags().StringVar(&snapshotStyle, "style", "line", "render style: line or dots")

	recordingsCmd := &cobra.Command{
		Use:   "recordings [dir]",
		Short: "list recorded sessions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRecordings,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list playback presets",
		RunE:  runPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration",
	}
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "write the default config file",
		RunE:  runConfigInit,
	}
	configInitCmd.Flags().StringVarP(&configOut, "out", "o", "alphaviz.yaml", "output file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(playCmd, validateCmd, inspectCmd, exportCmd, recordCmd,
		snapshotCmd, recordingsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)",
				preset, strings.Join(config.ListPresets(), ", "))
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

func resolvePath(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	if cfg.Data != "" {
		return cfg.Data
	}
	return config.DefaultData
}

func buildDataset(args []string, cfg *config.Config) (*dataset.Dataset, string, error) {
	path := resolvePath(args, cfg)
	table, err := loader.Load(path, zap.L())
	if err != nil {
		return nil, "", err
	}
	ds := dataset.Build(table, dataset.Options{
		BlocksPerDay:     cfg.BlocksPerDay,
		IntervalFallback: cfg.IntervalFallback,
		Logger:           zap.L(),
	})
	return ds, path, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	// log to a file so zap output cannot tear the alternate screen
	if _, err := logging.Init(debug, playLogFile); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ds, path, err := buildDataset(args, cfg)
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		return fmt.Errorf("no usable records in %s", path)
	}
	return player.Run(ds, cfg)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if _, err := logging.Init(debug, ""); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report, err := loader.Validate(resolvePath(args, cfg), zap.L())
	if err != nil {
		return err
	}

	fmt.Printf("log: %s (%d bytes)\n", report.Path, report.SizeBytes)
	fmt.Printf("records: %d\n", report.Records)
	fmt.Printf("duplicate blocks: %d\n", report.Duplicates)
	if len(report.Gaps) > 0 {
		fmt.Print("block spacing:")
		for i, g := range report.Gaps {
			if i == 3 {
				fmt.Printf(" (+%d more)", len(report.Gaps)-i)
				break
			}
			fmt.Printf(" %gx%d", g.Gap, g.Count)
		}
		fmt.Println()
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tNULLS\tMIN\tMAX\tMEAN\tSTDDEV\tDRIFT")
	for _, col := range report.Columns {
		if !col.Present {
			fmt.Fprintf(w, "%s\tmissing\t\t\t\t\t\n", col.Name)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			col.Name, col.Nulls,
			chart.FormatValue(col.Min), chart.FormatValue(col.Max),
			chart.FormatValue(col.Mean), chart.FormatValue(col.StdDev),
			chart.FormatValue(col.Drift))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(report.Warnings) == 0 {
		fmt.Println("\nno issues found")
		return nil
	}
	fmt.Println("\nwarnings:")
	for _, warn := range report.Warnings {
		fmt.Printf("  - %s\n", warn)
	}
	if strict {
		return fmt.Errorf("%d validation warnings", len(report.Warnings))
	}
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	if _, err := logging.Init(debug, ""); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ds, path, err := buildDataset(args, cfg)
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		return fmt.Errorf("no usable records in %s", path)
	}

	target := inspectBlock
	if !cmd.Flags().Changed("block") {
		target = ds.MinBlock()
	}

	nearest, _ := ds.Nearest(target)
	at, _ := ds.At(target)

	fmt.Printf("position %g  (span %g..%g, interval %g)\n",
		target, ds.MinBlock(), ds.MaxBlock(), ds.Interval())
	fmt.Printf("nearest row: block %g, day %d\n\n", nearest.Block, nearest.Day())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tNEAREST\tINTERPOLATED")
	for _, col := range ds.Columns() {
		if col == dataset.FieldBlock {
			continue
		}
		nv, av := math.NaN(), math.NaN()
		if v, ok := nearest.Value(col); ok {
			nv = v
		}
		if v, ok := at.Value(col); ok {
			av = v
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", col, chart.FormatValue(nv), chart.FormatValue(av))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	win := ds.Window(dataset.FieldExchangeRate, target, cfg.Chart.WindowSize, cfg.Chart.MaxPoints)
	fmt.Printf("\nwindow %g..%g: %d rows\n", win.Lower, win.Upper, len(win.Rows))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	if _, err := logging.Init(debug, ""); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ds, path, err := buildDataset(args, cfg)
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		return fmt.Errorf("no usable records in %s", path)
	}

	rows := export.Resample(ds, exportStep)
	step := exportStep
	if step <= 0 {
		step = ds.Interval()
	}

	toStdout := exportOut == "" || exportOut == "-"
	switch exportFormat {
	case "csv":
		if toStdout {
			return export.WriteCSV(os.Stdout, ds, rows)
		}
		err = export.ExportCSV(exportOut, ds, rows)
	case "json":
		if toStdout {
			return export.WriteJSON(os.Stdout, path, step, ds, rows)
		}
		err = export.ExportJSON(exportOut, path, step, ds, rows)
	default:
		return fmt.Errorf("unknown format %q (want csv or json)", exportFormat)
	}
	if err != nil {
		return err
	}
	fmt.Printf("exported %d rows to %s\n", len(rows), exportOut)
	return nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	if _, err := logging.Init(debug, ""); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ds, path, err := buildDataset(args, cfg)
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		return fmt.Errorf("no usable records in %s", path)
	}

	st := recorder.NewStore(recordOut)
	if err := st.Init(); err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	meta, err := recorder.Record(ds, cfg, st, recorder.Options{
		Name:     name,
		Source:   path,
		Field:    recordField,
		FPS:      recordFPS,
		Speed:    recordSpeed,
		Duration: recordDuration,
	}, zap.L())
	if err != nil {
		return err
	}

	fmt.Printf("recorded %d frames at %d fps\n", meta.Frames, meta.FPS)
	fmt.Printf("session: %s\n", filepath.Join(recordOut, meta.ID))
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if _, err := logging.Init(debug, ""); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ds, path, err := buildDataset(args, cfg)
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		return fmt.Errorf("no usable records in %s", path)
	}
	if !containsString(ds.Columns(), snapshotField) {
		return fmt.Errorf("unknown field %q (have: %s)",
			snapshotField, strings.Join(ds.Columns(), ", "))
	}

	blocks := make([]float64, ds.Len())
	values := make([]float64, ds.Len())
	for i := range blocks {
		row := ds.Row(i)
		blocks[i] = row.Block
		values[i] = math.NaN()
		if v, ok := row.Value(snapshotField); ok {
			values[i] = v
		}
	}

	var svg string
	switch snapshotStyle {
	case "line":
		svg = render.SeriesSVG(blocks, values, snapshotWidth, snapshotHeight, "#00ff88")
	case "dots":
		// braille cells map to 8x16 pixel blocks at scale 4
		canvas := render.NewCanvas(max(snapshotWidth/8, 8), max(snapshotHeight/16, 4))
		canvas.Border()
		canvas.PlotSeries(values)
		svg = render.CanvasSVG(canvas, 4)
	default:
		return fmt.Errorf("unknown style %q (want line or dots)", snapshotStyle)
	}
	if svg == "" {
		return fmt.Errorf("field %s has no drawable data", snapshotField)
	}

	if err := os.WriteFile(snapshotOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("snapshot written to %s\n", snapshotOut)
	return nil
}

func runRecordings(cmd *cobra.Command, args []string) error {
	dir := ".alphaviz"
	if len(args) > 0 {
		dir = args[0]
	}

	sessions, err := recorder.NewStore(dir).List()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no recordings found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tFIELD\tFRAMES\tFPS\tSPEED\tBLOCKS")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.1fx\t%g..%g\n",
			s.ID,
			s.Created.Format("2006-01-02 15:04:05"),
			s.Field, s.Frames, s.FPS, s.Speed,
			s.FirstBlock, s.LastBlock)
	}
	return w.Flush()
}

func runPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFPS\tDURATION\tRECORD SPEED\tWINDOW\tPOINTS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.0fs\t%.1fx\t%.0f\t%d\n",
			name, p.Animation.FPS, p.Animation.Duration,
			p.Animation.RecordSpeed, p.Chart.WindowSize, p.Chart.MaxPoints)
	}
	return w.Flush()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.Save(configOut, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", configOut)
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
