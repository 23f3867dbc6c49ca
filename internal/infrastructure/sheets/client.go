// Package sheets implements the remote table transport on top of the Google
// Sheets API. The review table is an ordinary worksheet: row 1 is the
// header, every other row is one case.
package sheets

import (
	"context"
	"fmt"
	"log"
	"os"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"clinic_review/internal/adapter/persistence/sheetstore"
)

const defaultWorksheet = "Assessment_Data"

// Client talks to one worksheet of one spreadsheet.
//
// Supported env vars:
//   - SHEETS_SPREADSHEET_ID (required)
//   - SHEETS_WORKSHEET (default: Assessment_Data)
//   - GOOGLE_SHEETS_CREDENTIALS_FILE (optional; falls back to application
//     default credentials)

type Client struct {
	svc           *sheetsv4.Service
	spreadsheetID string
	worksheet     string
}

var _ sheetstore.SheetAPI = (*Client)(nil)

func NewClientFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := os.Getenv("SHEETS_SPREADSHEET_ID")
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets: missing SHEETS_SPREADSHEET_ID")
	}

	opts := []option.ClientOption{option.WithScopes(sheetsv4.SpreadsheetsScope)}
	if credFile := os.Getenv("GOOGLE_SHEETS_CREDENTIALS_FILE"); credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}

	svc, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	log.Printf("[sheets][client] connected spreadsheet_id=%s", spreadsheetID)

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     getenvDefault("SHEETS_WORKSHEET", defaultWorksheet),
	}, nil
}

func (c *Client) ReadAll(ctx context.Context) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.worksheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read %s: %w", c.worksheet, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *Client) UpdateRange(ctx context.Context, row, col int, values [][]string) error {
	vr := &sheetsv4.ValueRange{Values: toAnyGrid(values)}
	rng := c.rangeFor(row, col, values)

	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: update %s: %w", rng, err)
	}
	return nil
}

func (c *Client) BatchUpdateCells(ctx context.Context, cells []sheetstore.CellWrite) error {
	data := make([]*sheetsv4.ValueRange, 0, len(cells))
	for _, cell := range cells {
		data = append(data, &sheetsv4.ValueRange{
			Range:  fmt.Sprintf("%s!%s", c.worksheet, a1(cell.Row, cell.Col)),
			Values: [][]any{{cell.Value}},
		})
	}

	req := &sheetsv4.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
	_, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: batch update %d cells: %w", len(cells), err)
	}
	return nil
}

func (c *Client) AppendRow(ctx context.Context, values []string) error {
	vr := &sheetsv4.ValueRange{Values: toAnyGrid([][]string{values})}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.worksheet, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append row: %w", err)
	}
	return nil
}

func (c *Client) rangeFor(row, col int, values [][]string) string {
	height := len(values)
	width := 0
	for _, vals := range values {
		if len(vals) > width {
			width = len(vals)
		}
	}
	if height <= 1 && width <= 1 {
		return fmt.Sprintf("%s!%s", c.worksheet, a1(row, col))
	}
	return fmt.Sprintf("%s!%s:%s", c.worksheet, a1(row, col), a1(row+height-1, col+width-1))
}

// a1 converts 1-based row/column coordinates to A1 notation.
func a1(row, col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return fmt.Sprintf("%s%d", letters, row)
}

func toAnyGrid(values [][]string) [][]any {
	grid := make([][]any, 0, len(values))
	for _, row := range values {
		cells := make([]any, 0, len(row))
		for _, v := range row {
			cells = append(cells, v)
		}
		grid = append(grid, cells)
	}
	return grid
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
