package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vvkuznetsov/charts-mcp/internal/config"
	"github.com/vvkuznetsov/charts-mcp/internal/server"
	"github.com/vvkuznetsov/charts-mcp/internal/theme"
	"github.com/vvkuznetsov/charts-mcp/pkg/logger"
	logzerolog "github.com/vvkuznetsov/charts-mcp/pkg/logger/zerolog"
)

// Command line flags
var (
	// Check command flags
	checkTool string
	checkSave bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "charts-mcp",
		Short:   "MCP server that renders charts, dashboards and terminal plots",
		Version: server.Version,
	}

	rootCmd.AddCommand(buildServeCmd(), buildCheckCmd(), buildThemesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP protocol over stdin/stdout",
		RunE:  runServe,
	}
}

func buildCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Run built-in sample payloads against every tool",
		RunE:  runCheck,
	}

	checkCmd.Flags().StringVarP(&checkTool, "tool", "t", "", "Check a single tool instead of all of them")
	checkCmd.Flags().BoolVarP(&checkSave, "save", "s", false, "Ask the tools to save images into OUTPUT_DIR")

	return checkCmd
}

func buildThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in theme presets",
		Run:   runThemes,
	}
}

func setup() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log, err := logzerolog.New(cfg.LogLevel, cfg.LogColored, cfg.LogJSON)
	if err != nil {
		return nil, nil, err
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		log.WithError(err).Warnf("could not create output directory %s, saves will be skipped", cfg.OutputDir)
		cfg.OutputDir = ""
	}

	return cfg, log, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	return server.New(cfg, log).ServeStdio()
}

func runThemes(cmd *cobra.Command, args []string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Preset", "Surface", "Default", "Palette"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	appendPresets := func(surface string, presets []theme.Preset) {
		for _, p := range presets {
			def := ""
			if p.Default {
				def = "*"
			}
			table.Append([]string{p.Name, surface, def, paletteCell(p.Palette)})
		}
	}
	appendPresets("image", theme.ListPresets())
	appendPresets("terminal", theme.ListCLIPresets())

	table.Render()
}

func paletteCell(palette []string) string {
	if len(palette) <= 4 {
		return fmt.Sprint(palette)
	}
	return fmt.Sprintf("%v +%d more", palette[:4], len(palette)-4)
}

func sortedToolNames(s *server.Server) []string {
	names := s.ToolNames()
	sort.Strings(names)
	return names
}
