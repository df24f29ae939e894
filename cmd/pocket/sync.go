package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/pocketbook/internal/cli"
	"github.com/Veraticus/pocketbook/internal/config"
	"github.com/Veraticus/pocketbook/internal/ledger"
	"github.com/Veraticus/pocketbook/internal/mirror"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror your transactions to a file in your cloud drive",
		Long: `Link a file (for example inside a Nutstore, Dropbox or iCloud folder, or a
gs://bucket/object in Cloud Storage) and every change is written there.
Other devices linking the same file pick your data up.

Linking imports what the file already holds, replacing local data.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "link [PATH|URI]",
		Short: "Choose a sync file and start mirroring",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSyncLink,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "restore",
		Short: "Resume mirroring to the previously linked file",
		Args:  cobra.NoArgs,
		RunE:  runSyncRestore,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the sync state",
		Args:  cobra.NoArgs,
		RunE:  runSyncStatus,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "unlink",
		Short: "Forget the sync file and stop mirroring",
		Args:  cobra.NoArgs,
		RunE:  runSyncUnlink,
	})

	return cmd
}

// picker returns the handle named on the command line, or asks for one.
// An empty answer cancels.
func picker(cmd *cobra.Command, args []string) mirror.Picker {
	return func(ctx context.Context) (mirror.Handle, error) {
		if len(args) > 0 {
			return mirror.Handle{URI: args[0]}, nil
		}
		prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		uri, err := prompter.Ask(ctx, "Sync file path or URI (e.g. ~/Nutstore/pocket.json, gs://bucket/pocket.json)")
		if errors.Is(err, cli.ErrInputCancelled) {
			return mirror.Handle{}, mirror.ErrCanceled
		}
		if err != nil {
			return mirror.Handle{}, err
		}
		return mirror.Handle{URI: uri}, nil
	}
}

func runSyncLink(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer closeApp(cmd, a)

	out, err := a.Sync.Link(cmd.Context(), picker(cmd, args))
	if errors.Is(err, mirror.ErrCanceled) {
		return nil
	}
	if err != nil {
		return err
	}

	printImportWarning(cmd.ErrOrStderr(), out)
	uri := a.Sync.Status().URI
	w := cmd.OutOrStdout()
	if config.DetectRuntime(viper.GetString("runtime.user_agent")).IsDesktop() {
		fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("%s Linked %s. Keep your cloud drive client running so changes reach your other devices.", cli.SyncIcon, uri)))
	} else {
		fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("%s Linked %s. Every change is now mirrored there.", cli.SyncIcon, uri)))
	}
	if out.Imported > 0 {
		fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf("Imported %d transactions from the sync file", out.Imported)))
	}
	return nil
}

func runSyncRestore(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer closeApp(cmd, a)

	out, err := a.Sync.Restore(cmd.Context())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if out == nil {
		fmt.Fprintln(w, cli.FormatInfo("No sync file linked. Run 'pocket sync link' to choose one."))
		return nil
	}

	printImportWarning(cmd.ErrOrStderr(), out)
	fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("%s Sync resumed with %s", cli.SyncIcon, a.Sync.Status().URI)))
	if out.Imported > 0 {
		fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf("Imported %d transactions from the sync file", out.Imported)))
	}
	return nil
}

func runSyncStatus(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer closeApp(cmd, a)

	status := a.Sync.Status()
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "State:  %s\n", status.State)
	if status.URI != "" {
		fmt.Fprintf(w, "File:   %s\n", status.URI)
	}
	fmt.Fprintf(w, "Local:  %d transactions in %s\n", a.Store.Len(), a.DB.Path())
	if saved, err := a.DB.UpdatedAt(cmd.Context(), ledger.TransactionsKey); err == nil {
		fmt.Fprintf(w, "Saved:  %s\n", saved.Local().Format("2006-01-02 15:04:05"))
	}
	if status.State == mirror.StateLinkedInactive {
		hint := "Run 'pocket sync restore' to resume mirroring."
		if viper.GetBool("sync.auto_restore") {
			hint = "Mirroring resumes automatically on the next change, or run 'pocket sync restore'."
		}
		fmt.Fprintln(w, cli.SubtleStyle.Render(hint))
	}
	return nil
}

func runSyncUnlink(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer closeApp(cmd, a)

	if err := a.Sync.Unlink(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Sync file forgotten. Your data stays on this device."))
	return nil
}
