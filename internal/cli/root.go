package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/visflow/pkg/buildinfo"
	"github.com/matzehuels/visflow/pkg/config"
	"github.com/matzehuels/visflow/pkg/errors"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the config file and VISFLOW_* environment are
// loaded. The log level comes from the config's log_level unless --verbose
// asks for debug output.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Visflow edits and runs dataflow diagrams",
		Long:         `Visflow is a dataflow diagram editor: nodes compute values from their inputs and push them downstream along typed edges. Diagrams can be run, validated, rendered, stored and edited interactively in the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/visflow/config.toml)")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and applies its log level.
func (c *CLI) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "log_level %q", cfg.LogLevel)
	}
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)
	c.Logger.Debug("config loaded", "path", c.configPath, "redis", cfg.RedisAddr != "")
	return nil
}
