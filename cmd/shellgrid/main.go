package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/shellgrid/internal/config"
	"github.com/san-kum/shellgrid/internal/experiment"
	"github.com/san-kum/shellgrid/internal/export"
	"github.com/san-kum/shellgrid/internal/monitoring"
	"github.com/san-kum/shellgrid/internal/setup"
	"github.com/san-kum/shellgrid/internal/storage"
	"github.com/san-kum/shellgrid/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	ranks      int
	quiet      bool
	shell      int
	row        int
	radial     bool
	outFile    string
)

// main registers the shellgrid commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "shellgrid",
		Short: "ragged spherical grid workbench",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if quiet {
				monitoring.SetLogger(nil)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".shellgrid", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress diagnostic logging")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from preset")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "show variable and shell layout",
		RunE:  showLayout,
	}
	layoutCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	layoutCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "build, seed and timestep a configuration, then save snapshots",
		RunE:  runExperiment,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().IntVar(&ranks, "ranks", 0, "radial sub-domains (overrides config)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list snapshots",
		RunE:  listRuns,
	}

	profileCmd := &cobra.Command{
		Use:   "profile [run_id] [variable]",
		Short: "plot one line of a stored variable",
		Args:  cobra.ExactArgs(2),
		RunE:  plotProfile,
	}
	profileCmd.Flags().IntVar(&shell, "shell", 0, "shell index")
	profileCmd.Flags().IntVar(&row, "row", 0, "row index")
	profileCmd.Flags().BoolVar(&radial, "radial", false, "plot along the shell axis instead")

	browseCmd := &cobra.Command{
		Use:   "browse [run_id] [variable]",
		Short: "browse a snapshot interactively",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  browseRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print snapshot metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id] [variable]",
		Short: "render one shell (or a radial profile) of a stored variable as svg",
		Args:  cobra.ExactArgs(2),
		RunE:  writeSVG,
	}
	svgCmd.Flags().IntVar(&shell, "shell", 0, "shell index")
	svgCmd.Flags().BoolVar(&radial, "radial", false, "draw the radial profile of the first cell")
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(initCmd, presetsCmd, layoutCmd, runCmd, listCmd, profileCmd, browseCmd, exportCmd, svgCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves --preset and --config; the config file wins.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return cfg, cfg.Validate()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s config to %s\n", cfg.Name, args[0])
	return nil
}

func showLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, err := setup.Build(cfg)
	if err != nil {
		return err
	}
	defer g.Release()

	out, err := viz.RenderLayout(fmt.Sprintf("%s (%s)", cfg.Name, cfg.Mode), g, cfg.Names())
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runExperiment(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("ranks") {
		cfg.Ranks = ranks
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s on %d rank(s)...\n", cfg.Name, cfg.Ranks)
	start := time.Now()

	results, err := experiment.New(cfg, st).Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tSHELLS\tDT\tLOCAL DT\tDONOR MAX\tMASS\tRUN ID")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.6g\t%.6g\t%.4f\t%.6g\t%s\n",
			r.Rank, r.Shells, r.Dt, r.LocalDt, r.DonorMax, r.Metrics["mass"], r.RunID)
	}
	w.Flush()

	if len(results) > 0 {
		if total, ok := results[0].Metrics["total_mass"]; ok {
			fmt.Printf("\ntotal mass: %.6g\n", total)
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tRANK\tSTEP\tDT\tVARIABLES\tTIMESTAMP")
	for _, run := range runs {
		names := make([]string, len(run.Variables))
		for i, v := range run.Variables {
			names[i] = v.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d\t%.6g\t%s\t%s\n",
			run.ID, run.Mode, run.Rank, run.Ranks, run.Step, run.Dt,
			strings.Join(names, ","), run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotProfile(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, variable := args[0], args[1]

	if radial {
		g, names, err := st.Restore(runID)
		if err != nil {
			return err
		}
		defer g.Release()
		v := indexOf(names, variable)
		if v < 0 {
			return fmt.Errorf("%w: %s", storage.ErrUnknownVariable, variable)
		}
		out, err := viz.RenderRadial(g, v, variable)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	line, err := st.LoadLine(runID, variable, shell, row)
	if err != nil {
		return err
	}
	fmt.Println(viz.RenderProfile(line, fmt.Sprintf("%s shell %d row %d", variable, shell, row)))
	fmt.Println()
	fmt.Println(viz.RenderStats(
		[2]string{"depth", fmt.Sprintf("%d", len(line))},
		[2]string{"first", fmt.Sprintf("%.6g", line[0])},
		[2]string{"last", fmt.Sprintf("%.6g", line[len(line)-1])},
	))
	return nil
}

func browseRun(cmd *cobra.Command, args []string) error {
	g, names, err := storage.New(dataDir).Restore(args[0])
	if err != nil {
		return err
	}
	defer g.Release()

	v := 0
	if len(args) > 1 {
		if v = indexOf(names, args[1]); v < 0 {
			return fmt.Errorf("%w: %s", storage.ErrUnknownVariable, args[1])
		}
	}
	return viz.RunBrowser(args[0], g, names, v)
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func writeSVG(cmd *cobra.Command, args []string) error {
	g, names, err := storage.New(dataDir).Restore(args[0])
	if err != nil {
		return err
	}
	defer g.Release()

	v := indexOf(names, args[1])
	if v < 0 {
		return fmt.Errorf("%w: %s", storage.ErrUnknownVariable, args[1])
	}

	var svg string
	if radial {
		series, err := viz.RadialSeries(g, v, 0, 0)
		if err != nil {
			return err
		}
		svg, err = export.ProfileToSVG(series, 600, 300, "#00ff00")
		if err != nil {
			return err
		}
	} else {
		svg, err = export.ShellToSVG(g, v, shell, 8)
		if err != nil {
			return err
		}
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}
