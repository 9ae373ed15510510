package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"masonry/app"
	"masonry/box"
	"masonry/config"
	"masonry/inspect"
	"masonry/log"
)

// Fallback size for render when stdout is not a terminal.
const (
	defaultRenderWidth  = 80
	defaultRenderHeight = 24
)

var (
	version            = "0.1.0"
	configFlag         string
	boxesFlag          int
	maxColumnWidthFlag float64
	cachePolicyFlag    string
	seedFlag           uint64
	verboseFlag        bool

	renderWidthFlag  int
	renderHeightFlag int
	renderJSONFlag   bool
	noColorFlag      bool

	rootCmd = &cobra.Command{
		Use:   "masonry",
		Short: "masonry - a masonry grid of colored boxes that keeps its shape across resizes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log.Initialize(verboseFlag)
			defer log.Close()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			return app.Run(ctx, cfg, seededRand(cmd))
		},
	}

	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render the grid once to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(verboseFlag)
			defer log.Close()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
			width, height := renderWidthFlag, renderHeightFlag
			if isTerminal {
				if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					if width <= 0 {
						width = w
					}
					if height <= 0 {
						height = h
					}
				}
			}
			if width <= 0 {
				width = defaultRenderWidth
			}
			if height <= 0 {
				height = defaultRenderHeight
			}

			if noColorFlag || !isTerminal {
				lipgloss.SetColorProfile(termenv.Ascii)
			}

			view, snapshot := app.RenderOnce(cfg, seededRand(cmd), width, height)
			if renderJSONFlag {
				data, err := inspect.Marshal(snapshot)
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}
			fmt.Println(view)
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config and log paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false)
			defer log.Close()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Printf("Log: %s\n", log.FileName())
			if inspect.IsEnabled() {
				fmt.Printf("Inspect: %s\n", inspect.GetInspectFile())
			}

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of masonry",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("masonry version %s\n", version)
		},
	}
)

// loadConfig reads --config when given, the config directory otherwise, and
// applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if configFlag != "" {
		c, err := config.LoadConfigFile(configFlag)
		if err != nil {
			return nil, err
		}
		cfg = c
	} else {
		cfg = config.LoadConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("boxes") {
		cfg.BoxCount = boxesFlag
	}
	if flags.Changed("max-column-width") {
		cfg.MaxColumnWidth = maxColumnWidthFlag
	}
	if flags.Changed("cache-policy") {
		cfg.CachePolicy = cachePolicyFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// seededRand returns a deterministic source when --seed was given.
func seededRand(cmd *cobra.Command) *rand.Rand {
	if !cmd.Flags().Changed("seed") {
		return nil
	}
	return box.NewSeededRand(seedFlag)
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, renderCmd} {
		c.Flags().IntVarP(&boxesFlag, "boxes", "n", 0, "Number of boxes to generate (overrides config)")
		c.Flags().Float64VarP(&maxColumnWidthFlag, "max-column-width", "w", 0,
			"Widest a column may get in pixels before another column is added")
		c.Flags().StringVar(&cachePolicyFlag, "cache-policy", "",
			"Which boxes keep their measured height: 'all' or 'single'")
		c.Flags().Uint64Var(&seedFlag, "seed", 0, "Seed for box heights and colors")
	}
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "",
		"Path to a .toml or .json config file instead of ~/.masonry/config.json")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Write debug records to the log file")

	renderCmd.Flags().IntVar(&renderWidthFlag, "width", 0, "Terminal width in cells (defaults to the current terminal)")
	renderCmd.Flags().IntVar(&renderHeightFlag, "height", 0, "Terminal height in cells")
	renderCmd.Flags().BoolVar(&renderJSONFlag, "json", false, "Print the layout snapshot as JSON instead of the grid")
	renderCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Render without colors")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
