// Package cli defines the ragdeck command tree.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ragdeck/ragdeck/internal/app"
)

var (
	configPath  string
	prefsPath   string
	pollSeconds int
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ragdeck",
	Short: "Terminal admin console for the scribe chat backend",
	Long: `ragdeck is a terminal console for a scribe retrieval-chat backend:
edit its configuration, manage the document store, control the chat
service and follow its logs live.`,
	// SilenceUsage prevents printing usage on runtime errors.
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return app.Run(ctx, app.Options{
			ConfigPath: configPath,
			PrefsPath:  prefsPath,
			PollEvery:  pollSeconds,
		})
	},
}

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "ragdeck version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.Flags().StringVar(&configPath, "config", "", "path to the client config (default ~/.config/ragdeck/config.toml)")
	rootCmd.Flags().StringVar(&prefsPath, "prefs", "", "path to the preferences file (default ~/.config/ragdeck/prefs.toml)")
	rootCmd.Flags().IntVar(&pollSeconds, "poll", 0, "status poll interval in seconds (default from config)")
}
