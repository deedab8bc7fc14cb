package command

import (
	"github.com/spf13/cobra"

	"onenight/internal/server"
)

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve games over HTTP and websockets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			if cmd.Flags().Changed("port") {
				cfg.Port, _ = cmd.Flags().GetInt("port")
			}
			if cmd.Flags().Changed("answer-timeout") {
				cfg.AnswerTimeout, _ = cmd.Flags().GetDuration("answer-timeout")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			srv := server.New(cfg, log)
			defer srv.Close()
			return srv.Start()
		},
	}

	cmd.Flags().Int("port", 8080, "server port (overrides ONENIGHT_PORT)")
	cmd.Flags().Duration("answer-timeout", 0, "how long a player may take to answer (overrides ONENIGHT_ANSWER_TIMEOUT)")
	return cmd
}
