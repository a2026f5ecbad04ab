// Package ops loads the desk configuration: the security catalog, quote
// lot schedule, trading books, feed locations, and the historical sink.
package ops

import (
	"encoding/json"
	"os"
	"time"

	"github.com/yanun0323/decimal"
	"github.com/yanun0323/errors"

	"main/internal/catalog"
	"main/internal/model"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Catalog []BondConfig  `json:"catalog"`
	Lots    []int64       `json:"lots"`
	Books   []string      `json:"books"`
	Feeds   FeedsConfig   `json:"feeds"`
	History HistoryConfig `json:"history"`
}

// BondConfig describes one catalog security.
type BondConfig struct {
	CUSIP    string          `json:"cusip"`
	Ticker   string          `json:"ticker"`
	Coupon   decimal.Decimal `json:"coupon"`
	Maturity string          `json:"maturity"`
	PV01     float64         `json:"pv01"`
}

// FeedsConfig names the flat-file feeds, relative to Dir.
type FeedsConfig struct {
	Dir        string `json:"dir"`
	Prices     string `json:"prices"`
	MarketData string `json:"marketData"`
	Trades     string `json:"trades"`
	Inquiries  string `json:"inquiries"`
}

// HistoryConfig selects the historical persistence backend.
type HistoryConfig struct {
	// Backend is "file" or "postgres".
	Backend string `json:"backend"`
	// Dir holds the per-kind output files for the file backend.
	Dir string `json:"dir"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Catalog *catalog.Catalog
	Lots    []int64
	Books   []string
	Feeds   FeedsConfig
	History HistoryConfig
}

// defaultConfigJSON covers the seven on-the-run treasuries.
const defaultConfigJSON = `{
  "catalog": [
    {"cusip": "91282CFX4", "ticker": "T", "coupon": "0.04505", "maturity": "2024-11-30", "pv01": 0.02},
    {"cusip": "91282CFW6", "ticker": "T", "coupon": "0.04093", "maturity": "2025-11-15", "pv01": 0.03},
    {"cusip": "91282CFZ9", "ticker": "T", "coupon": "0.03974", "maturity": "2027-11-30", "pv01": 0.05},
    {"cusip": "91282CFY2", "ticker": "T", "coupon": "0.03890", "maturity": "2029-11-30", "pv01": 0.07},
    {"cusip": "91282CFV8", "ticker": "T", "coupon": "0.04125", "maturity": "2032-11-15", "pv01": 0.09},
    {"cusip": "912810TM0", "ticker": "T", "coupon": "0.03935", "maturity": "2042-11-15", "pv01": 0.2},
    {"cusip": "912810TL2", "ticker": "T", "coupon": "0.03513", "maturity": "2052-11-15", "pv01": 0.2}
  ],
  "lots": [1000000, 2000000],
  "books": ["TRSY1", "TRSY2", "TRSY3"],
  "feeds": {
    "dir": "testdata/feeds",
    "prices": "prices.txt",
    "marketData": "marketdata.txt",
    "trades": "trades.txt",
    "inquiries": "inquiries.txt"
  },
  "history": {"backend": "file", "dir": "testdata/hist"}
}`

// Load reads a JSON config file and resolves it. An empty path loads the
// built-in default desk.
func Load(path string) (Loaded, error) {
	data := []byte(defaultConfigJSON)
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return Loaded{}, err
		}
	}

	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, errors.Wrap(err, "decode config")
	}
	return resolve(cfg)
}

func resolve(cfg FileConfig) (Loaded, error) {
	entries := make([]catalog.Entry, 0, len(cfg.Catalog))
	for _, b := range cfg.Catalog {
		maturity, err := time.Parse("2006-01-02", b.Maturity)
		if err != nil {
			return Loaded{}, errors.Wrapf(err, "maturity of %s", b.CUSIP)
		}
		entries = append(entries, catalog.Entry{
			Bond: model.Bond{
				CUSIP:    b.CUSIP,
				Ticker:   b.Ticker,
				Coupon:   b.Coupon,
				Maturity: maturity,
			},
			PV01: b.PV01,
		})
	}

	cat, err := catalog.New(entries)
	if err != nil {
		return Loaded{}, err
	}

	lots := cfg.Lots
	if len(lots) == 0 {
		lots = []int64{1_000_000, 2_000_000}
	}
	books := cfg.Books
	if len(books) == 0 {
		books = []string{"TRSY1", "TRSY2", "TRSY3"}
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = "file"
	}

	return Loaded{
		Catalog: cat,
		Lots:    lots,
		Books:   books,
		Feeds:   cfg.Feeds,
		History: cfg.History,
	}, nil
}
