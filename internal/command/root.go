package command

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"onenight/internal/config"
)

const AppName = "onenight"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "One Night werewolf game server",
		Long:          "onenight runs One Night werewolf games over websockets, or simulates them with bots.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().String("log-level", "", "log level (overrides ONENIGHT_LOG_LEVEL)")
	cmd.PersistentFlags().Bool("dev-log", false, "human readable logs (overrides ONENIGHT_DEV_LOG)")

	cmd.AddCommand(
		NewServeCmd(),
		NewSimulateCmd(),
		NewRolesCmd(),
	)

	return cmd
}

func Execute() error {
	return NewRootCmd(Version).Execute()
}

// loadConfig reads the environment and applies any logging flags the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.LogLevel = f.Value.String()
	}
	if f := cmd.Flags().Lookup("dev-log"); f != nil && f.Changed {
		cfg.DevLog, _ = cmd.Flags().GetBool("dev-log")
	}
	log, err := cfg.Logger()
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}
