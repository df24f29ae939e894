package main

import (
	"fmt"
	"os"

	"github.com/Veraticus/pocketbook/internal/cli"
	"github.com/Veraticus/pocketbook/internal/common"
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace all transactions with a JSON backup",
		Long: `Replace every transaction with the contents of a JSON backup, such as
one written by 'pocket export' or a linked sync file.

The file must hold a JSON list of transactions. Anything else is rejected
and nothing changes.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return common.NewUserError(fmt.Sprintf("Could not read %s", args[0]), err)
	}

	records, err := model.DecodeList(data)
	if err != nil {
		return common.NewUserError("Import failed: the file is not a transaction list", fmt.Errorf("%w: %w", common.ErrParseFailed, err))
	}

	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer closeApp(cmd, a)

	a.Store.ReplaceAll(records)
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d transactions", len(records))))
	return nil
}
