package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hauldeck/cmd/hauldeck/ui"
	"hauldeck/internal/api"
	"hauldeck/internal/cache"
	"hauldeck/internal/config"
	"hauldeck/internal/geocode"
	"hauldeck/internal/hos"
	"hauldeck/internal/logging"
)

// version is set by the build.
var version = "dev"

var (
	cfg     config.Config
	logger  *zap.Logger
	verbose bool
)

// rootCmd launches the interactive dashboard.
var rootCmd = &cobra.Command{
	Use:   "hauldeck",
	Short: "hauldeck - trip planning and HOS log dashboard for truck drivers",
	Long: `hauldeck plans property-carrying trips against the route planning
backend and renders the generated Hours-of-Service daily logs.

Run without arguments to start the interactive dashboard.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if verbose {
			cfg.LogLevel = "debug"
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

// tripsCmd prints the trip listing without entering the TUI.
var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "List planned trips",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logging.NewStderrLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = log

		client := api.New(cfg.APIBaseURL, cfg.APITimeout, log)
		trips, err := client.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(trips) == 0 {
			fmt.Println("No trips.")
			return nil
		}

		styles := ui.NewStyles(ui.ThemeFor(cfg.Theme))
		table := ui.NewSimpleTable("Trips", "ID", "Route", "Driver", "Miles", "Duration", "Created").
			AlignRight(3, 4)
		for _, t := range trips {
			table.AddRow(
				t.ID,
				t.PickupLocation+" -> "+t.DropoffLocation,
				t.DriverName,
				fmt.Sprintf("%.0f", t.TotalDistance()),
				hos.FormatDuration(t.TotalDuration()),
				t.CreatedAt)
		}
		fmt.Print(table.View(styles))
		return nil
	},
}

// tripCmd prints one trip's detail, segments and daily logs.
var tripCmd = &cobra.Command{
	Use:   "trip [id]",
	Short: "Show one trip with its route segments and daily logs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logging.NewStderrLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = log

		client := api.New(cfg.APIBaseURL, cfg.APITimeout, log)
		t, err := client.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		styles := ui.NewStyles(ui.ThemeFor(cfg.Theme))
		fmt.Println(ui.RenderRouteMap(t, styles))
		fmt.Println(ui.RenderSegments(t.Segments, styles))
		info := ui.LogSheetInfo{
			DriverName:  t.DriverName,
			CarrierName: t.CarrierName,
			TruckNumber: t.TruckNumber,
		}
		for _, day := range t.DailyLogs {
			fmt.Println(ui.RenderLogSheet(day, info, styles))
		}
		return nil
	},
}

// cacheCmd groups local cache maintenance.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear recent trips and saved preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logging.NewStderrLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = log

		store, err := cache.Open(cfg.CachePath(), log)
		if err != nil {
			return err
		}
		defer store.Close()

		store.Clear()
		fmt.Println("Cache cleared.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hauldeck version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("hauldeck " + version)
	},
}

// runDashboard wires the dependencies and hands the terminal to bubbletea.
func runDashboard() error {
	log, err := logging.NewFileLogger(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = log
	log.Info("starting dashboard",
		zap.String("version", version),
		zap.String("api", cfg.APIBaseURL))

	store, err := cache.Open(cfg.CachePath(), log)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	client := api.New(cfg.APIBaseURL, cfg.APITimeout, log)
	geo := geocode.New(cfg.GeocodeURL, log)

	app := NewApp(cfg, client, geo, store, log)
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(context.Background()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(tripsCmd, tripCmd, cacheCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
