package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/pocketbook/internal/cli"
	"github.com/Veraticus/pocketbook/internal/common"
	"github.com/Veraticus/pocketbook/internal/config"
	"github.com/Veraticus/pocketbook/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
	}

	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command will:
1. Print a URL to authenticate with Google
2. Save the refresh token for future use
3. Update your config file with the token

You'll need to run this once before 'pocket export --format sheets'.`,
		Args: cobra.NoArgs,
		RunE: runAuthSheets,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")
	cmd.Flags().String("listen", "localhost:8080", "address of the local callback server")

	return cmd
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg := sheets.DefaultConfig()
	cfg.LoadFromViper(viper.GetViper())
	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		cfg.ClientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		cfg.ClientSecret = flagSecret
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return common.NewUserError(
			"OAuth2 credentials not found. Set sheets.client_id and sheets.client_secret in config or use --client-id and --client-secret",
			common.ErrMissingConfig,
		)
	}

	tokenFile := filepath.Join(config.ExpandPath(config.DefaultConfigDir), "sheets-token.json")
	listen, _ := cmd.Flags().GetString("listen")

	// The consent URL is logged at info level regardless of logging.level.
	logger, err := common.NewLogger(cmd.ErrOrStderr(), slog.LevelInfo, viper.GetString("logging.format"))
	if err != nil {
		return err
	}

	token, err := sheets.AuthenticateOAuth2Interactive(ctx, sheets.OAuth2Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenFile:    tokenFile,
		ListenAddr:   listen,
	}, logger)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	viper.Set("sheets.client_id", cfg.ClientID)
	viper.Set("sheets.client_secret", cfg.ClientSecret)
	viper.Set("sheets.refresh_token", token.RefreshToken)
	viper.Set("sheets.token_file", tokenFile)

	w := cmd.OutOrStdout()
	if err := saveConfig(); err != nil {
		slog.Warn("Failed to update config file with refresh token", "error", err)
		fmt.Fprintln(w, cli.FormatWarning("Could not save the refresh token to your config file."))
		fmt.Fprintf(w, "Add this to config.yaml manually:\nsheets:\n  token_file: %q\n", tokenFile)
		return nil
	}

	fmt.Fprintln(w, cli.FormatSuccess("Authentication successful. Run 'pocket export --format sheets' to write a report."))
	return nil
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = filepath.Join(config.ExpandPath(config.DefaultConfigDir), "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0750); err != nil {
		return err
	}

	return viper.WriteConfigAs(configFile)
}
