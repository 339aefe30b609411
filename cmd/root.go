package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Timwi/KtaneZoo/pkg/game/config"
	"github.com/Timwi/KtaneZoo/pkg/game/edgework"
	"github.com/Timwi/KtaneZoo/pkg/game/renderer"
)

var (
	verbose    bool
	configPath string
	seed       int64
	ports      string
	portsJSON  []string
	cfg        *config.Config
	tui        *renderer.TUI

	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "zoo",
	Short: "Play and inspect the Zoo hex-line puzzle",
	Long: `Zoo hides five animals in a straight line on a hexagonal board of 61
animals. The bomb's port plates decide which direction the line runs. Open the
door, then press the animals of the line that are on display, in line order,
before the door closes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}

		var err error
		cfg, err = config.LoadOrCreate(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg.Normalize(log)

		gotext.Configure(cfg.Display.LocaleDir, cfg.Display.Language, "default")

		tui = renderer.New(cmd.OutOrStdout())
		tui.Init(cfg.Display.Color)

		if !cmd.Flags().Changed("seed") {
			seed = time.Now().UnixNano() % 1_000_000
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "zoo.toml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Ruleset seed (random when not set)")
	rootCmd.PersistentFlags().StringVar(&ports, "ports", "", `Port plates, e.g. "DVI,PS2;;Serial,RJ45" (plates split by ";" or "|")`)
	rootCmd.PersistentFlags().StringArrayVar(&portsJSON, "ports-json", nil, `Port plate widget JSON, once per plate, e.g. '{"presentPorts":["DVI"]}'`)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadEdgework builds the bomb's edgework from --ports-json or --ports.
func loadEdgework() (edgework.Edgework, error) {
	if len(portsJSON) > 0 {
		ew, err := edgework.ParseWidgets(portsJSON)
		if err != nil {
			return edgework.Edgework{}, fmt.Errorf("parsing --ports-json: %w", err)
		}
		return ew, nil
	}
	ew, err := edgework.ParseCompact(ports)
	if err != nil {
		return edgework.Edgework{}, fmt.Errorf("parsing --ports: %w", err)
	}
	return ew, nil
}
