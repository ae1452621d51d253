package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/cacontreras/polsim/internal/config"
	"github.com/cacontreras/polsim/internal/export"
	"github.com/cacontreras/polsim/internal/optics"
	"github.com/cacontreras/polsim/internal/storage"
	"github.com/cacontreras/polsim/internal/tui"
)

var (
	dataDir     string
	intensity   float64
	curvePoints int
	saveRun     bool
	configFile  string
	preset      string
	outFile     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "polsim",
		Short: "Malus's law polarization lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive lab when no command given
			return tui.Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".polsim", "data directory")

	intensityCmd := &cobra.Command{
		Use:   "intensity [angle_deg]",
		Short: "transmitted intensity through one polarizer",
		Args:  cobra.ExactArgs(1),
		RunE:  runIntensity,
	}
	intensityCmd.Flags().Float64Var(&intensity, "i0", 1.0, "incident intensity (W/m²)")

	chainCmd := &cobra.Command{
		Use:   "chain [angle_deg]...",
		Short: "intensity through a chain of polarizers",
		Args:  cobra.ArbitraryArgs,
		RunE:  runChain,
	}
	chainCmd.Flags().Float64Var(&intensity, "i0", 1.0, "incident intensity (W/m²)")
	chainCmd.Flags().BoolVar(&saveRun, "save", false, "save run to the data directory")
	chainCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	chainCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "plot the theoretical Malus curve",
		RunE:  runCurve,
	}
	curveCmd.Flags().Float64Var(&intensity, "i0", 1.0, "incident intensity (W/m²)")
	curveCmd.Flags().IntVar(&curvePoints, "points", optics.DefaultCurvePoints, "number of curve samples")
	curveCmd.Flags().BoolVar(&saveRun, "save", false, "save run to the data directory")

	invertCmd := &cobra.Command{
		Use:   "invert [desired] [incident]",
		Short: "angle giving a desired transmitted intensity",
		Args:  cobra.ExactArgs(2),
		RunE:  runInvert,
	}

	validateCmd := &cobra.Command{
		Use:   "validate [reference.yaml]",
		Short: "compare calculations against reference data",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "demonstration dataset at 15° steps",
		RunE:  runSample,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outFile, "out", "", "output file (default <run_id>.csv)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run data as an SVG plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tI0\tANGLES\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%v\t%s\n", name, cfg.Intensity, cfg.Angles, cfg.Label)
			}
			return w.Flush()
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive polarizer lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	rootCmd.AddCommand(intensityCmd, chainCmd, curveCmd, invertCmd, validateCmd,
		sampleCmd, runsCmd, plotCmd, exportCmd, exportCSVCmd, exportSVGCmd, presetsCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseAngles(args []string) ([]float64, error) {
	angles := make([]float64, 0, len(args))
	for _, arg := range args {
		angle, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid angle %q: %w", arg, err)
		}
		angles = append(angles, angle)
	}
	return angles, nil
}

func runIntensity(cmd *cobra.Command, args []string) error {
	angle, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid angle %q: %w", args[0], err)
	}

	calc := optics.New(intensity)
	transmitted := calc.Transmitted(angle)

	fmt.Printf("angle: %.2f°\n", angle)
	fmt.Printf("incident: %.4f W/m²\n", intensity)
	fmt.Printf("transmitted: %.4f W/m²\n", transmitted)
	if intensity != 0 {
		fmt.Printf("transmission: %.1f%%\n", transmitted/intensity*100)
	}
	return nil
}

func runChain(cmd *cobra.Command, args []string) error {
	angles, err := parseAngles(args)
	if err != nil {
		return err
	}

	label := ""

	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		if !cmd.Flags().Changed("i0") {
			intensity = cfg.Intensity
		}
		if len(angles) == 0 {
			angles = cfg.Angles
		}
		label = cfg.Label
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("i0") {
			intensity = cfg.Intensity
		}
		if len(angles) == 0 {
			angles = cfg.Angles
		}
		if cfg.Label != "" {
			label = cfg.Label
		}
	}

	calc := optics.New(intensity)
	intensities := calc.Chain(angles)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STAGE\tANGLE\tINTENSITY\tTRANSMISSION")

	for i, val := range intensities {
		stage := "source"
		angleStr := "-"
		if i > 0 {
			stage = fmt.Sprintf("P%d", i)
			angleStr = fmt.Sprintf("%.1f°", angles[i-1])
		}
		percent := 0.0
		if intensity != 0 {
			percent = val / intensity * 100
		}
		fmt.Fprintf(w, "%s\t%s\t%.6f\t%.2f%%\n", stage, angleStr, val, percent)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if saveRun {
		stageAngles := make([]float64, len(intensities))
		sum := 0.0
		for i := range intensities {
			if i > 0 {
				sum += angles[i-1]
			}
			stageAngles[i] = sum
		}

		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Kind:      "chain",
			Label:     label,
			Intensity: intensity,
			Angles:    angles,
		}, stageAngles, intensities)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved: %s\n", runID)
	}

	return nil
}

func runCurve(cmd *cobra.Command, args []string) error {
	if curvePoints < 1 {
		return fmt.Errorf("points must be positive, got %d", curvePoints)
	}

	calc := optics.New(intensity)
	angles, intensities := calc.Curve(curvePoints)

	graph := asciigraph.Plot(intensities,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("I(θ) = %.2f·cos²θ, 0°–360°, %d samples", intensity, curvePoints)),
	)
	fmt.Println(graph)

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Kind:      "curve",
			Intensity: intensity,
		}, angles, intensities)
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", runID)
	}
	return nil
}

func runInvert(cmd *cobra.Command, args []string) error {
	desired, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid desired intensity %q: %w", args[0], err)
	}
	incident, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid incident intensity %q: %w", args[1], err)
	}

	angle, err := optics.AngleForTransmission(desired, incident)
	if err != nil {
		return err
	}

	fmt.Printf("desired: %.4f W/m²\n", desired)
	fmt.Printf("incident: %.4f W/m²\n", incident)
	fmt.Printf("angle: %.4f°\n", angle)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	ref, err := config.LoadReference(args[0])
	if err != nil {
		return fmt.Errorf("failed to load reference: %w", err)
	}
	if len(ref.Reference) == 0 {
		return fmt.Errorf("reference file has no data points")
	}

	calc := optics.New(ref.Intensity)
	results, err := calc.Validate(ref.Reference)
	if err != nil {
		return err
	}

	// Stable ascending-angle output
	angles := make([]float64, 0, len(results))
	for angle := range results {
		angles = append(angles, angle)
	}
	sort.Float64s(angles)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANGLE\tREFERENCE\tCALCULATED\tABS ERROR\tPCT ERROR")
	for _, angle := range angles {
		r := results[angle]
		fmt.Fprintf(w, "%.1f°\t%.6f\t%.6f\t%.2e\t%.4f%%\n",
			angle, r.Reference, r.Calculated, r.AbsoluteError, r.PercentError)
	}
	return w.Flush()
}

func runSample(cmd *cobra.Command, args []string) error {
	data := optics.SampleDataset()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANGLE\tINTENSITY\tTRANSMISSION")
	for _, p := range data {
		fmt.Fprintf(w, "%.0f°\t%.6f\t%.2f%%\n", p.Angle, p.Intensity, p.TransmissionPercent)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tI0\tSTAGES\tFINAL")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\t%.4f\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Intensity,
			len(run.Angles),
			run.Final,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, intensities, err := st.LoadCurve(runID)
	if err != nil {
		return err
	}
	if len(intensities) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kind: %s\n", meta.Kind)
	fmt.Printf("samples: %d\n\n", len(intensities))

	caption := "intensity vs angle"
	if meta.Kind == "chain" {
		caption = "intensity per stage"
	}

	graph := asciigraph.Plot(intensities,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	angles, intensities, err := st.LoadCurve(runID)
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = runID + ".csv"
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"angle_deg", "intensity"}); err != nil {
		return err
	}
	for i := range angles {
		row := []string{
			strconv.FormatFloat(angles[i], 'f', 6, 64),
			strconv.FormatFloat(intensities[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	fmt.Printf("exported %d rows to %s\n", len(angles), path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	angles, intensities, err := st.LoadCurve(runID)
	if err != nil {
		return err
	}
	if len(angles) < 2 {
		return fmt.Errorf("not enough data to plot")
	}

	svg := export.CurveToSVG(angles, intensities, 800, 400)

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("exported %d points to %s\n", len(angles), path)
	return nil
}
