package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/pocketbook/internal/cli"
	"github.com/Veraticus/pocketbook/internal/common"
	"github.com/Veraticus/pocketbook/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = newRootCmd()
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pocket",
		Short: "👛 Personal bookkeeping in your terminal",
		Long: `pocket records income, expenses and transfers across ledgers,
shows monthly totals, and can mirror everything to a file in your
cloud drive so other devices stay in sync.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/pocket/config.yaml)")
	cmd.PersistentFlags().String("db", "", "database file (default: $HOME/.local/share/pocket/pocket.db)")
	cmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("database.path", cmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("logging.level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", cmd.PersistentFlags().Lookup("log-format"))

	viper.SetDefault("sync.auto_restore", true)
	viper.SetDefault("tui.theme", "default")

	// Add commands
	cmd.AddCommand(addCmd())
	cmd.AddCommand(editCmd())
	cmd.AddCommand(deleteCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(statsCmd())
	cmd.AddCommand(importCmd())
	cmd.AddCommand(importOFXCmd())
	cmd.AddCommand(exportCmd())
	cmd.AddCommand(syncCmd())
	cmd.AddCommand(authCmd())
	cmd.AddCommand(browseCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func main() {
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx, stop := interrupts.HandleInterrupts(context.Background())

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		common.LogDebug("command failed", common.Fields{"error": err})
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(config.ExpandPath(cfgFile))
	} else {
		viper.AddConfigPath(config.ExpandPath(config.DefaultConfigDir))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("POCKET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	return common.SetupLogger(level, viper.GetString("logging.format"))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pocket %s\n", version)
		},
	}
}
