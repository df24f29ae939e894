package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Veraticus/pocketbook/internal/common"
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/Veraticus/pocketbook/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetTitle is the tab the report is written to.
const SheetTitle = "Ledger"

var detailHeader = []any{"Date", "Type", "Category", "Amount", "Account", "To Account", "Note", "Flagged"}

// Writer implements service.ReportWriter for Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Write replaces the sheet's content with report.
func (w *Writer) Write(ctx context.Context, report *service.Report) error {
	w.logger.Info("starting report generation",
		"ledger", report.Ledger,
		"month", report.Month.String(),
		"transactions", len(report.Transactions))

	spreadsheetID, sheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if clearErr := w.clearSheet(ctx, spreadsheetID); clearErr != nil {
		return fmt.Errorf("failed to clear sheet: %w", clearErr)
	}

	values := prepareReportData(report)

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, func() error {
		return w.writeData(ctx, spreadsheetID, values)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return w.applyFormatting(ctx, spreadsheetID, sheetID, len(values))
		}, retryOpts)
		if err != nil {
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("report generation completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var client *oauth2.Config
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client = &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = client.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet returns the spreadsheet ID and the ID of its
// SheetTitle tab, creating either when missing.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, int64, error) {
	if w.config.SpreadsheetID != "" {
		existing, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", 0, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		for _, sheet := range existing.Sheets {
			if sheet.Properties != nil && sheet.Properties.Title == SheetTitle {
				return existing.SpreadsheetId, sheet.Properties.SheetId, nil
			}
		}
		sheetID, err := w.addSheet(ctx, existing.SpreadsheetId)
		if err != nil {
			return "", 0, err
		}
		return existing.SpreadsheetId, sheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: SheetTitle,
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", 0, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	var sheetID int64
	if len(created.Sheets) > 0 && created.Sheets[0].Properties != nil {
		sheetID = created.Sheets[0].Properties.SheetId
	}
	return created.SpreadsheetId, sheetID, nil
}

func (w *Writer) addSheet(ctx context.Context, spreadsheetID string) (int64, error) {
	resp, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: SheetTitle},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to add %s tab: %w", SheetTitle, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return 0, fmt.Errorf("unable to add %s tab: empty reply", SheetTitle)
	}
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

// clearSheet clears all data from the sheet.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, SheetTitle+"!A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// prepareReportData lays the report out as rows: title, totals, one block
// per category breakdown, then every transaction newest first.
func prepareReportData(report *service.Report) [][]any {
	estimatedRows := 16 + len(report.ExpenseByCategory) + len(report.IncomeByCategory) + len(report.Transactions)
	values := make([][]any, 0, estimatedRows)

	values = append(values,
		[]any{"Pocket Report", fmt.Sprintf("%s · %s", report.Ledger, report.Month.String())},
		[]any{},
		[]any{"Summary"},
		[]any{"Income", "", "", report.Income.StringFixed(2)},
		[]any{"Expense", "", "", report.Expense.StringFixed(2)},
		[]any{"Balance", "", "", report.Balance.StringFixed(2)},
		[]any{"Transactions", len(report.Transactions)},
	)

	values = appendBreakdown(values, "Expense by Category", report.ExpenseByCategory)
	values = appendBreakdown(values, "Income by Category", report.IncomeByCategory)

	values = append(values,
		[]any{},
		[]any{"Transaction Details"},
		detailHeader,
	)

	for _, tx := range report.Transactions {
		flagged := ""
		if tx.IsFlagged {
			flagged = "yes"
		}
		values = append(values, []any{
			tx.Date.Format("2006-01-02"),
			string(tx.Type),
			model.CategoryName(tx.CategoryID),
			tx.Amount.StringFixed(2),
			tx.Account,
			tx.ToAccount,
			tx.Note,
			flagged,
		})
	}

	return values
}

func appendBreakdown(values [][]any, title string, rows []service.CategorySummary) [][]any {
	values = append(values,
		[]any{},
		[]any{title},
		[]any{"Category", "Count", "Share", "Amount"},
	)
	for _, row := range rows {
		values = append(values, []any{
			row.Name,
			row.Count,
			fmt.Sprintf("%.1f%%", row.Percentage),
			row.Amount.StringFixed(2),
		})
	}
	return values
}

// writeData writes the data to the spreadsheet.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := i + w.config.BatchSize
		if end > len(values) {
			end = len(values)
		}

		batch := values[i:end]
		valueRange := &sheets.ValueRange{
			Values: batch,
		}

		rangeStr := fmt.Sprintf("%s!A%d", SheetTitle, i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()

		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
	}

	return nil
}

// applyFormatting applies formatting to the spreadsheet.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, sheetID int64, totalRows int) error {
	requests := []*sheets.Request{
		// Title row.
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   2,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold:     true,
							FontSize: 16,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		// Section labels.
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    2,
					EndRowIndex:      int64(totalRows),
					StartColumnIndex: 0,
					EndColumnIndex:   1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold: true,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		// Amount column.
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      int64(totalRows),
					StartColumnIndex: 3,
					EndColumnIndex:   4,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{
							Type:    "CURRENCY",
							Pattern: "¥#,##0.00",
						},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   int64(len(detailHeader)),
				},
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetID,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: 2,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
	return err
}
