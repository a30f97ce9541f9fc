package budget

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReportType selects the data set an export contains.
type ReportType string

const (
	ReportSpending ReportType = "spending"
	ReportLimits   ReportType = "limits"
	ReportTrends   ReportType = "trends"
)

// ExportFormat selects the serialization of an export.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
	FormatPDF  ExportFormat = "pdf"
)

// Report is a serialized export ready to be written to the client.
type Report struct {
	ContentType string
	Filename    string
	Body        []byte
}

var spendingCSVHeader = []string{"Category", "Amount", "Percentage", "Status"}

// ExportBudgetReport fetches the requested data set and serializes it. PDF
// output is a structured placeholder, not a rendered document.
func (s *Service) ExportBudgetReport(ctx context.Context, userID uuid.UUID, reportType, period, format string) (*Report, error) {
	rt := ReportType(strings.ToLower(strings.TrimSpace(reportType)))
	switch rt {
	case ReportSpending, ReportLimits, ReportTrends:
	default:
		return nil, invalid("Invalid report type", fmt.Sprintf("type must be one of spending, limits, trends (got %q)", reportType))
	}
	ef := ExportFormat(strings.ToLower(strings.TrimSpace(format)))
	if ef == "" {
		ef = FormatJSON
	}
	switch ef {
	case FormatCSV, FormatJSON, FormatPDF:
	default:
		return nil, invalid("Invalid format", fmt.Sprintf("format must be one of csv, json, pdf (got %q)", format))
	}
	if ef == FormatCSV && rt != ReportSpending {
		return nil, invalid("Invalid format", "csv export is only available for spending reports")
	}
	p, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	var data any
	var breakdown []CategoryBudget
	switch rt {
	case ReportSpending:
		breakdown, err = s.GetCategoryBreakdown(ctx, userID, p)
		data = breakdown
	case ReportLimits:
		data, err = s.ListBudgetLimits(ctx, userID)
	case ReportTrends:
		data, err = s.GetBudgetTrends(ctx, userID, p, 0)
	}
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("budget-%s-%s", rt, p)
	switch ef {
	case FormatCSV:
		body, err := SpendingCSV(breakdown)
		if err != nil {
			return nil, err
		}
		return &Report{ContentType: "text/csv", Filename: name + ".csv", Body: body}, nil
	case FormatPDF:
		body, err := json.MarshalIndent(map[string]any{
			"title":        fmt.Sprintf("Budget Report - %s", strings.ToUpper(string(rt[:1]))+string(rt[1:])),
			"generated_at": s.now().Format(time.RFC3339),
			"data":         data,
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode report: %w", err)
		}
		return &Report{ContentType: "application/json", Filename: name + ".json", Body: body}, nil
	default:
		body, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode report: %w", err)
		}
		return &Report{ContentType: "application/json", Filename: name + ".json", Body: body}, nil
	}
}

// SpendingCSV writes one row per breakdown entry under the
// Category,Amount,Percentage,Status header.
func SpendingCSV(breakdown []CategoryBudget) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(spendingCSVHeader); err != nil {
		return nil, err
	}
	for _, cb := range breakdown {
		row := []string{
			cb.CategoryName,
			cb.SpentAmount.StringFixed(2),
			fmt.Sprintf("%.2f%%", cb.PercentageOfTotal),
			string(cb.Status),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}
