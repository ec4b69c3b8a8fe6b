package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// HistoryRecord is one past assessment in the stable shape the views consume.
type HistoryRecord struct {
	Date         time.Time
	Result       string
	BloodGlucose float64
	BMI          float64
	HbA1c        float64
}

// Diabetic reports whether this record's result was positive.
func (r HistoryRecord) Diabetic() bool {
	return r.Result == "1"
}

// historyAliases is the single mapping table covering the spellings the
// backend has used for the same metric across versions. First match wins.
var historyAliases = map[string][]string{
	"bloodGlucose": {"bloodGlucose", "blood_glucose", "blood_glucose_level"},
	"hba1c":        {"hba1c", "HbA1c_level", "hba1cLevel"},
	"bmi":          {"bmi"},
}

// historyDateLayouts are the timestamp formats the backend is known to emit.
var historyDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DecodeHistory parses a history response body, which is either a bare array
// of rows or an object wrapping the array under "data", and normalizes each
// row. Rows are returned sorted by date, oldest first.
func DecodeHistory(body []byte) ([]HistoryRecord, error) {
	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		var wrapped struct {
			Data []map[string]any `json:"data"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("decoding history response: %w", err)
		}
		rows = wrapped.Data
	}

	records := make([]HistoryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, normalizeHistoryRow(row))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

func normalizeHistoryRow(row map[string]any) HistoryRecord {
	rec := HistoryRecord{
		BloodGlucose: aliasedNumber(row, historyAliases["bloodGlucose"]),
		HbA1c:        aliasedNumber(row, historyAliases["hba1c"]),
		BMI:          aliasedNumber(row, historyAliases["bmi"]),
	}

	if raw, ok := row["date"]; ok {
		if s, ok := raw.(string); ok {
			rec.Date = parseHistoryDate(s)
		}
	}

	switch v := row["result"].(type) {
	case string:
		rec.Result = v
	case float64:
		rec.Result = fmt.Sprintf("%.0f", v)
	}
	return rec
}

func aliasedNumber(row map[string]any, aliases []string) float64 {
	for _, key := range aliases {
		if raw, ok := row[key]; ok {
			switch v := raw.(type) {
			case float64:
				return v
			case json.Number:
				if f, err := v.Float64(); err == nil {
					return f
				}
			}
		}
	}
	return 0
}

func parseHistoryDate(s string) time.Time {
	for _, layout := range historyDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// NumericKeys lists the columns of a dynamic graph row that hold numbers,
// skipping identifier columns. Used by the trends view to pick plot series.
func NumericKeys(row map[string]any) []string {
	skip := map[string]struct{}{"id": {}, "userId": {}, "user_id": {}}
	keys := make([]string, 0, len(row))
	for key, value := range row {
		if _, ok := skip[key]; ok {
			continue
		}
		if _, ok := value.(float64); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// LabelKey picks the column that names a dynamic graph row: "check" when the
// backend sends it, otherwise "date". Empty when the row carries neither.
func LabelKey(row map[string]any) string {
	for _, key := range []string{"check", "date"} {
		if _, ok := row[key]; ok {
			return key
		}
	}
	return ""
}
