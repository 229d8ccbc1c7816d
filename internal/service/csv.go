package service

import (
	"encoding/csv"
	"errors"
	"io"
	"time"

	"budgethub/internal/models"

	"github.com/shopspring/decimal"
)

// Expected header names in an import file.
const (
	importColDescription = "Description"
	importColAmount      = "Amount"
	importColDate        = "Date"
)

// parseImportCSV reads a bank-export CSV and returns the rows that represent
// spending. Amounts are signed in the source: negative values are expenses
// (stored with the sign stripped), non-negative values are income and are
// skipped. Any malformed row fails the whole parse.
func parseImportCSV(r io.Reader) ([]*models.Expense, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, validationErrorf("CSV file is empty or unreadable")
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	descIdx, okDesc := cols[importColDescription]
	amountIdx, okAmount := cols[importColAmount]
	dateIdx, okDate := cols[importColDate]
	if !okDesc || !okAmount || !okDate {
		return nil, validationErrorf("CSV header must contain Description, Amount and Date columns")
	}

	var expenses []*models.Expense
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, validationErrorf("malformed CSV record on line %d", line)
		}

		amount, err := decimal.NewFromString(record[amountIdx])
		if err != nil {
			return nil, validationErrorf("invalid amount %q on line %d", record[amountIdx], line)
		}

		// Income, not an expense.
		if amount.Sign() >= 0 {
			continue
		}

		date, err := time.Parse(dateLayout, record[dateIdx])
		if err != nil {
			return nil, validationErrorf("invalid date %q on line %d, expected YYYY-MM-DD", record[dateIdx], line)
		}

		description := record[descIdx]
		expenses = append(expenses, &models.Expense{
			Description: description,
			Amount:      amount.Abs(),
			Category:    categorize(description),
			Date:        date,
		})
	}

	return expenses, nil
}

// writeExpensesCSV writes the export document: a fixed header row followed by
// one row per expense, amounts with two decimals, ISO dates.
func writeExpensesCSV(w io.Writer, expenses []*models.Expense) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"description", "amount", "category", "date"}); err != nil {
		return err
	}
	for _, e := range expenses {
		record := []string{
			e.Description,
			e.Amount.StringFixed(2),
			e.Category,
			e.Date.Format(dateLayout),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
