package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"

	"ValueSentinel/internal/model"
)

const snapshotJSON = `{
  "symbol": "ACME",
  "marketCap": 1000000,
  "periods": [
    {"date": "2022-12-31", "fiscalYear": "2022", "data": {"netincomeloss": 80, "stockholdersequity": 400, "revenues": 1000}},
    {"date": "2024-12-31", "fiscalYear": 2024, "data": {"netincomeloss": 120, "stockholdersequity": 500, "revenues": 1200}},
    {"date": "2023-12-31", "fiscalYear": 2023, "data": {"netincomeloss": 100, "stockholdersequity": 450, "revenues": 1100}}
  ]
}`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestFileSource_Snapshot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ACME.json", snapshotJSON)

	snap, err := NewFileSource(dir).FetchFinancials(context.Background(), "acme")
	if err != nil {
		t.Fatalf("FetchFinancials: %v", err)
	}
	if snap.MarketCap == nil || *snap.MarketCap != 1e6 {
		t.Errorf("expected market cap 1e6, got %v", snap.MarketCap)
	}
	want := []string{"2024-12-31", "2023-12-31", "2022-12-31"}
	for i, p := range snap.Periods {
		if p.Date != want[i] {
			t.Errorf("period %d: expected %s, got %s", i, want[i], p.Date)
		}
		if p.Symbol != "ACME" {
			t.Errorf("period %d: expected symbol stamped, got %q", i, p.Symbol)
		}
	}
}

func TestFileSource_BareArrayHjson(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "KO.hjson", `[
  { fiscalYear: 2024, data: { netincome: 10 } }
  { fiscalYear: 2023, data: { netincome: 9 } }
]`)

	snap, err := NewFileSource(dir).FetchFinancials(context.Background(), "KO")
	if err != nil {
		t.Fatalf("FetchFinancials: %v", err)
	}
	if snap.Symbol != "KO" || len(snap.Periods) != 2 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if v, _ := snap.Periods[0].Data.Get("netincome"); v != 10 {
		t.Errorf("expected latest net income 10, got %v", v)
	}
	if snap.MarketCap != nil {
		t.Errorf("expected no market cap, got %v", *snap.MarketCap)
	}
}

func TestParseSnapshot_HjsonObject(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`# ACME annual filings
{
  symbol: ACME
  marketCap: 2500000
  periods: [
    {
      date: 2023-12-31
      fiscalYear: 2023
      data: {
        netincomeloss: 100
        stockholdersequity: 450
      }
    }
    {
      date: 2024-12-31
      fiscalYear: 2024
      data: {
        netincomeloss: 120
        stockholdersequity: 500
      }
    }
  ]
}
`))
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}
	if snap.Symbol != "ACME" || len(snap.Periods) != 2 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.MarketCap == nil || *snap.MarketCap != 2.5e6 {
		t.Errorf("expected market cap 2.5e6, got %v", snap.MarketCap)
	}
	if snap.Periods[0].Date != "2024-12-31" || snap.Periods[0].FiscalYear != 2024 {
		t.Errorf("expected 2024 period first, got %+v", snap.Periods[0])
	}
	if v, _ := snap.Periods[0].Data.Get("netincomeloss"); v != 120 {
		t.Errorf("expected latest net income 120, got %v", v)
	}
}

func TestFileSource_RepairsTrailingComma(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{"symbol": "X", "periods": [{"data": {"revenue": 5},},],}`))
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}
	if v, _ := snap.Periods[0].Data.Get("revenue"); v != 5 {
		t.Errorf("expected revenue 5, got %v", v)
	}
}

func TestFileSource_NotFound(t *testing.T) {
	_, err := NewFileSource(t.TempDir()).FetchFinancials(context.Background(), "NOPE")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderPeriods_KeepsOrderWithoutDates(t *testing.T) {
	periods := []model.RawPeriodRecord{{Period: "a", FiscalYear: 2020}, {Period: "b"}, {Period: "c", FiscalYear: 2024}}
	orderPeriods(periods)
	if periods[0].Period != "a" || periods[2].Period != "c" {
		t.Errorf("expected supplied order kept, got %+v", periods)
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/financials" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Query().Get("symbol") {
		case "ACME":
			if r.URL.Query().Get("limit") != "5" {
				t.Errorf("expected limit 5, got %s", r.URL.Query().Get("limit"))
			}
			w.Write([]byte(snapshotJSON))
		case "BOOM":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/", "key", "", 0)
	snap, err := src.FetchFinancials(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("FetchFinancials: %v", err)
	}
	if len(snap.Periods) != 3 || snap.Periods[0].Date != "2024-12-31" {
		t.Errorf("unexpected periods %+v", snap.Periods)
	}

	if _, err := src.FetchFinancials(context.Background(), "MISSING"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := src.FetchFinancials(context.Background(), "BOOM"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestStaticSource_ReturnsCopy(t *testing.T) {
	src := NewStaticSource(&Snapshot{Symbol: "ACME", Periods: []model.RawPeriodRecord{{Date: "2024"}}})
	a, err := src.FetchFinancials(context.Background(), "acme")
	if err != nil {
		t.Fatalf("FetchFinancials: %v", err)
	}
	a.Periods[0].Date = "mutated"
	b, _ := src.FetchFinancials(context.Background(), "ACME")
	if b.Periods[0].Date != "2024" {
		t.Error("expected stored snapshot unaffected by caller mutation")
	}
	if _, err := src.FetchFinancials(context.Background(), "OTHER"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCollect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snap, err := ParseSnapshot([]byte(snapshotJSON))
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}
	fillSymbol(snap.Periods, snap.Symbol)

	src := NewMockSource(ctrl)
	src.EXPECT().FetchFinancials(gomock.Any(), "ACME").Return(snap, nil).Times(2)

	c := NewCollector(src)
	data, err := c.Collect(context.Background(), "ACME", nil)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if data.Ticker != "ACME" || len(data.Metrics) != 3 {
		t.Errorf("unexpected data %+v", data)
	}
	if data.Metrics[0].ReturnOnEquity != 120.0/500.0 {
		t.Errorf("expected latest ROE 0.24, got %v", data.Metrics[0].ReturnOnEquity)
	}
	if *data.MarketCap != 1e6 {
		t.Errorf("expected source market cap, got %v", *data.MarketCap)
	}

	override := 5e5
	data, err = c.Collect(context.Background(), "ACME", &override)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if *data.MarketCap != 5e5 {
		t.Errorf("expected override market cap, got %v", *data.MarketCap)
	}
}

func TestCollect_SourceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockSource(ctrl)
	src.EXPECT().FetchFinancials(gomock.Any(), "GONE").Return(nil, ErrNotFound)
	src.EXPECT().Name().Return("mock")

	_, err := NewCollector(src).Collect(context.Background(), "GONE", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected wrapped ErrNotFound, got %v", err)
	}
}
