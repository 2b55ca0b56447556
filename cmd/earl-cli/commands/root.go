package commands

import (
	"context"
	"fmt"

	"chatbot-backend/internal/config"
	"chatbot-backend/internal/telemetry"
	"chatbot-backend/lib/earl"
	"chatbot-backend/lib/restyutil"

	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool
	dumpDir    string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to an earl.json5 config, searched for upwards from the cwd by default.")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug reports.")
	rootCmd.PersistentFlags().StringVar(&dumpDir, "dump", "", "Write every http exchange to a file in this directory.")
}

var rootCmd = &cobra.Command{
	Use:   "earl-cli",
	Short: "earl-cli fetches endpoints and walks html pages, it is used to build and check scraper paths.",
	// errors are printed by main.
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var cfg config.Config
		var err error
		if configPath != "" {
			cfg, err = config.LoadFile(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg.Debug = cfg.Debug || debug
		telemetry.InitSlog(cfg.Debug)

		tel := telemetry.SlogAPI{}
		opts := cfg.EarlOptions(tel)
		if dumpDir != "" {
			output, err := restyutil.NewFilesystemOutput(dumpDir)
			if err != nil {
				return err
			}
			opts = append(opts, earl.WithDump(output))
		}
		cmd.SetContext(withEnv(cmd.Context(), &env{
			Config: cfg,
			Tel:    tel,
			Client: earl.NewClient(opts...),
		}))
		return nil
	},
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
