package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawValues maps a source-specific field name to its reported number.
// Key names are not normalised and vary by filer and provider.
type RawValues map[string]float64

// Get returns the value stored under key and whether the key is present.
func (v RawValues) Get(key string) (float64, bool) {
	f, ok := v[key]
	return f, ok
}

// UnmarshalJSON keeps numeric members and numeric strings; null, boolean
// and other values are dropped so that they resolve as absent.
func (v *RawValues) UnmarshalJSON(data []byte) error {
	var members map[string]any
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	out := make(RawValues, len(members))
	for k, m := range members {
		switch n := m.(type) {
		case float64:
			out[k] = n
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				out[k] = f
			}
		}
	}
	*v = out
	return nil
}

// FiscalYear accepts both 2024 and "2024" on decode.
type FiscalYear int

func (y *FiscalYear) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*y = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Unparseable years carry no ordering information.
		*y = 0
		return nil
	}
	*y = FiscalYear(n)
	return nil
}

// RawPeriodRecord is one reporting period as supplied by a financials provider.
type RawPeriodRecord struct {
	Data       RawValues  `json:"data"`
	Date       string     `json:"date,omitempty"`
	Symbol     string     `json:"symbol,omitempty"`
	FiscalYear FiscalYear `json:"fiscalYear,omitempty"`
	Period     string     `json:"period,omitempty"`
}
