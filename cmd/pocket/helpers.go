package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/pocketbook/internal/app"
	"github.com/Veraticus/pocketbook/internal/cli"
	"github.com/Veraticus/pocketbook/internal/common"
	"github.com/Veraticus/pocketbook/internal/config"
	"github.com/Veraticus/pocketbook/internal/mirror"
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const flushTimeout = 10 * time.Second

// openApp opens the configured database and probes for a sync handle. With
// restore set and sync.auto_restore enabled, a recorded handle is
// re-activated so the command's changes reach the mirror.
func openApp(cmd *cobra.Command, restore bool) (*app.App, error) {
	ctx := cmd.Context()

	a, err := app.Open(ctx, app.Options{
		DBPath: config.DatabasePath(viper.GetString("database.path")),
		Logger: slog.Default(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if restore && viper.GetBool("sync.auto_restore") {
		out, err := a.AutoRestore(ctx)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(common.UserMessage(err)))
		}
		printImportWarning(cmd.ErrOrStderr(), out)
	}
	return a, nil
}

// closeApp waits for pending writes and reports a revoked mirror. It still
// runs after the command context was interrupted.
func closeApp(cmd *cobra.Command, a *app.App) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), flushTimeout)
	defer cancel()

	if err := a.Close(ctx); err != nil {
		slog.Warn("failed to close cleanly", "error", err)
	}
	if notice := a.Sync.Status().Notice; notice != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(notice))
	}
}

func printImportWarning(w io.Writer, out *mirror.Outcome) {
	if out == nil || out.ImportErr == nil {
		return
	}
	slog.Debug("sync content not imported", "error", out.ImportErr)
	fmt.Fprintln(w, cli.FormatWarning("The sync file was not imported: it does not contain a transaction list"))
}

// parseMonth parses YYYY-MM in local time. Empty means the current month.
func parseMonth(s string) (model.MonthRange, error) {
	if s == "" {
		return model.MonthOf(time.Now()), nil
	}
	t, err := time.ParseInLocation("2006-01", s, time.Local)
	if err != nil {
		return model.MonthRange{}, common.NewUserError(fmt.Sprintf("Invalid month %q, expected YYYY-MM", s), err)
	}
	return model.MonthOf(t), nil
}

// parseDay parses YYYY-MM-DD as local midnight, or a full RFC 3339
// timestamp.
func parseDay(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	t, err := model.ParseDate(s)
	if err != nil {
		return time.Time{}, common.NewUserError(fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", s), err)
	}
	return t, nil
}

func parseType(s string) (model.TransactionType, error) {
	typ := model.TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !typ.Valid() {
		return "", common.NewUserError(fmt.Sprintf("Unknown type %q, expected expense, income or transfer", s), model.ErrInvalidType)
	}
	return typ, nil
}

func requireCategory(id string, typ model.TransactionType) error {
	cats := model.CategoriesFor(typ)
	ids := make([]string, 0, len(cats))
	for _, c := range cats {
		if c.ID == id {
			return nil
		}
		ids = append(ids, c.ID)
	}
	return common.NewUserError(
		fmt.Sprintf("Unknown %s category %q (choose from: %s)", typ, id, strings.Join(ids, ", ")),
		common.ErrNotFound,
	)
}

func saveError(typ model.TransactionType, err error) error {
	if !errors.Is(err, model.ErrInvalidAmount) {
		return err
	}
	if typ == model.TypeTransfer {
		return common.NewUserError("Amount cannot be negative", err)
	}
	return common.NewUserError("Amount must be greater than 0", err)
}
