// PlankLay lays out floor planks row by row, reusing offcuts, and exports
// the result as drawings, labels and cut lists.
//
// Build:
//
//	go build -o planklay ./cmd/planklay
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/piwi3910/PlankLay/internal/model"
	"github.com/piwi3910/PlankLay/internal/project"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath   string
	profilesPath string
	verbose      bool

	config model.AppConfig
	custom []model.SupplyProfile
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "planklay",
		Short:        "Floor plank layout with offcut reuse",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", project.DefaultConfigPath(), "app config file")
	root.PersistentFlags().StringVar(&a.profilesPath, "profiles", project.DefaultProfilesPath(), "custom supply profiles file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every board placed")

	root.AddCommand(
		newLayoutCmd(a),
		newCompareCmd(a),
		newEstimateCmd(a),
		newProfilesCmd(a),
		newRoomCmd(a),
		newServeCmd(a),
	)
	return root
}

// load reads the config and custom profiles and sets up logging.
func (a *app) load(logOut io.Writer) error {
	config, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", a.configPath, err)
	}
	custom, err := project.LoadCustomProfiles(a.profilesPath)
	if err != nil {
		return fmt.Errorf("failed to load profiles %s: %w", a.profilesPath, err)
	}
	a.config = config
	a.custom = custom

	level := parseLevel(config.LogLevel)
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
