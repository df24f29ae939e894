package main

import (
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/Veraticus/pocketbook/internal/tui"
	"github.com/Veraticus/pocketbook/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse transactions day by day",
		Long: `Open the interactive browser.

Keys: ←/→ day, [/] month, ↑/↓ select, tab next ledger, / search,
d delete, ? help, q quit.`,
		Args: cobra.NoArgs,
		RunE: runBrowse,
	}

	cmd.Flags().StringP("ledger", "l", "", "ledger to open (default: first ledger)")
	cmd.Flags().String("day", "", "day to open as YYYY-MM-DD (default: today)")
	cmd.Flags().String("theme", "", "color theme (default, catppuccin)")
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	opts := []tui.Option{
		tui.WithTheme(themes.ByName(viper.GetString("tui.theme"))),
	}

	ledgerName, _ := cmd.Flags().GetString("ledger")
	if ledgerName == "" {
		ledgerName = model.DefaultLedger()
	}
	opts = append(opts, tui.WithLedger(ledgerName))

	if dayFlag, _ := cmd.Flags().GetString("day"); dayFlag != "" {
		day, err := parseDay(dayFlag)
		if err != nil {
			return err
		}
		opts = append(opts, tui.WithDay(day))
	}

	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer closeApp(cmd, a)

	opts = append(opts, tui.WithLedgers(ledgerNames(a.Store.All(), ledgerName)))
	return tui.Run(cmd.Context(), a.Store, opts...)
}

// ledgerNames is the suggestion list followed by any other ledger in use.
func ledgerNames(txs []model.Transaction, current string) []string {
	names := append([]string(nil), model.Ledgers...)
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
	}
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	add(current)
	for _, tx := range txs {
		add(tx.Ledger)
	}
	return names
}
