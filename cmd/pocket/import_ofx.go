package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/pocketbook/internal/cli"
	"github.com/Veraticus/pocketbook/internal/common"
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/Veraticus/pocketbook/internal/ofx"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.
Debits become expenses, credits become income. Transactions imported
before are skipped.

Examples:
  # Import single file
  pocket import-ofx ~/Downloads/statement_jan_2024.qfx

  # Import all QFX files in a directory
  pocket import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().StringP("ledger", "l", "", "ledger for imported transactions (default: first ledger)")
	cmd.Flags().StringP("account", "a", ofx.DefaultAccount, "account for imported transactions")
	cmd.Flags().Bool("dry-run", false, "preview import without saving")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ledgerName, _ := cmd.Flags().GetString("ledger")
	account, _ := cmd.Flags().GetString("account")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	parser := ofx.NewParser(ofx.Options{Ledger: ledgerName, Account: account}, slog.Default())

	var bar *progressbar.ProgressBar
	if len(files) > 1 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Parsing statements"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var imported []model.Transaction
	for _, path := range files {
		txs, err := parseOFXFile(cmd, parser, path)
		if err != nil {
			common.LogError(err, "Failed to parse OFX file", common.Fields{"file": path})
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(fmt.Sprintf("Skipped %s: %v", filepath.Base(path), err)))
		} else {
			imported = append(imported, txs...)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	a, err := openApp(cmd, !dryRun)
	if err != nil {
		return err
	}
	defer closeApp(cmd, a)

	fresh := ofx.NewOnly(a.Store.All(), imported)
	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Would import %d new of %d parsed transactions", len(fresh), len(imported))))
		fmt.Fprintln(out, cli.RenderTransactionTable(fresh))
		return nil
	}

	for _, tx := range fresh {
		a.Store.Add(tx)
	}
	common.LogInfo("OFX import finished", common.Fields{
		"files":    len(files),
		"parsed":   len(imported),
		"imported": len(fresh),
	})
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d new transactions (%d already present)", len(fresh), len(imported)-len(fresh))))
	return nil
}

func parseOFXFile(cmd *cobra.Command, parser *ofx.Parser, path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return parser.ParseFile(cmd.Context(), f)
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}
