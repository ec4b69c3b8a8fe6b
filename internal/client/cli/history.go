package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/glucotrack/glucotrack/internal/client/models"
)

// History prints past assessments, oldest first.
func (a *App) History(ctx context.Context) error {
	records, err := a.predictions.History(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if len(records) == 0 {
		printlnFn("No prediction history yet.")
		return nil
	}

	printlnFn(fmt.Sprintf("%-12s %-10s %10s %8s %8s", "Date", "Result", "Glucose", "BMI", "HbA1c"))
	for _, r := range records {
		result := "Negative"
		if r.Diabetic() {
			result = "Positive"
		}
		printlnFn(fmt.Sprintf("%-12s %-10s %10.1f %8.1f %8.1f",
			r.Date.Format("2006-01-02"), result, r.BloodGlucose, r.BMI, r.HbA1c))
	}
	return nil
}

// Dashboard summarizes the most recent readings: latest HbA1c with its
// classification, latest glucose, total checks, and the raw metrics of the
// last recorded checks.
func (a *App) Dashboard(ctx context.Context) error {
	records, err := a.predictions.History(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if len(records) == 0 {
		printlnFn("No data yet. Run 'predict' to get started.")
		return nil
	}

	latest := records[len(records)-1]
	printlnFn(fmt.Sprintf("Latest HbA1c:   %.1f%% (%s)", latest.HbA1c, models.RiskLabel(latest.HbA1c)))
	printlnFn(fmt.Sprintf("Latest glucose: %.1f mg/dL", latest.BloodGlucose))
	printlnFn(fmt.Sprintf("Total checks:   %d", len(records)))
	printlnFn(fmt.Sprintf("Last check:     %s", latest.Date.Format("2006-01-02")))

	checks, err := a.predictions.LastChecks(ctx)
	if err != nil {
		// The summary above is already useful on its own.
		a.log.Warn(ctx, "last checks unavailable", "error", err)
		return nil
	}
	if len(checks) > 0 {
		printlnFn("Recent checks:")
		for _, row := range checks {
			printlnFn("  " + formatCheckRow(row))
		}
	}
	return nil
}

// formatCheckRow renders one dynamic backend row: the check (or date) label
// first when the row carries one, then the numeric metrics. Metric order is
// stable regardless of the JSON field order.
func formatCheckRow(row map[string]any) string {
	parts := []string{}
	if key := models.LabelKey(row); key != "" {
		parts = append(parts, fmt.Sprintf("%v:", row[key]))
	}
	for _, k := range models.NumericKeys(row) {
		if v, ok := row[k].(float64); ok {
			parts = append(parts, fmt.Sprintf("%s=%.1f", k, v))
		}
	}
	return strings.Join(parts, " ")
}
