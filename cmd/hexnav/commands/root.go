package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/milk9111/hexnav/config"
	"github.com/milk9111/hexnav/logging"
)

var (
	versionString = "dev"
	player        Player
)

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(v, c, d string) {
	versionString = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// SetPlayer installs the interactive viewer used by `hexnav play`.
func SetPlayer(p Player) {
	player = p
}

// app carries what PersistentPreRunE resolved for the subcommands.
type app struct {
	configFile string
	logLevel   string
	logDir     string

	cfg    *config.Config
	logger *logging.Logger
	print  *printer
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "hexnav",
		Short: "Hex-grid navigation: A* pathfinding and agent movement",
		Long: `hexnav finds shortest paths across the water cells of a hex map and
drives agents along them: rotate to face the next cell, move to its centre,
repeat. New destinations cancel the search or movement in progress.`,
		Version: versionString,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.logger.Close()
		},
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/hexnav/config.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logDir, "log-dir", "", "write hexnav.log to this directory instead of stderr")

	root.AddCommand(
		newPathCmd(a),
		newSimulateCmd(a),
		newBenchCmd(a),
		newPlayCmd(a),
		newMapsCmd(a),
	)
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		newPrinter(root.OutOrStdout(), root.ErrOrStderr()).Error(err.Error(), "")
	}
	return err
}

// errReported marks errors already printed by a command.
var errReported = errors.New("reported")

func reported(err error) error {
	return fmt.Errorf("%w: %w", errReported, err)
}

func (a *app) init(cmd *cobra.Command) error {
	a.print = newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())

	v := config.New()
	file := a.configFile
	if file == "" {
		if _, err := os.Stat(config.ConfigFile()); err == nil {
			file = config.ConfigFile()
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
	}
	bindFlag(v, cmd, "logging.level", "log-level")
	bindFlag(v, cmd, "logging.dir", "log-dir")

	cfg, err := config.FromViper(v)
	if err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			return reported(a.print.Error("Invalid configuration", verrs.Error(),
				"Fix the values above in "+displayFile(file),
				"Override them with HEXNAV_* environment variables"))
		}
		return err
	}
	a.cfg = cfg

	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func bindFlag(v *viper.Viper, cmd *cobra.Command, key, name string) {
	if f := cmd.Flags().Lookup(name); f != nil {
		_ = v.BindPFlag(key, f)
	}
}

func displayFile(file string) string {
	if file == "" {
		return "your config file"
	}
	return file
}

// useMap points the config at a map name or path given on the command line.
func (a *app) useMap(name string) {
	if name == "" {
		return
	}
	a.cfg.Map.Name = name
	a.cfg.Map.Path = ""
}

func (a *app) mapName() string {
	if a.cfg.Map.Path != "" {
		return a.cfg.Map.Path
	}
	return a.cfg.Map.Name
}
