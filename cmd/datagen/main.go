package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/yanun0323/logs"

	"main/internal/datagen"
	"main/internal/ops"
)

// Writes the four feed files for a simulation run without starting the
// desk.
func main() {
	configPath := flag.String("config", "", "Path to JSON config (empty=built-in default desk)")
	records := flag.Int("records", 100, "Price and market data records per product")
	trades := flag.Int("trades", 10, "Trades per product")
	inquiries := flag.Int("inquiries", 10, "Inquiries per product")
	flag.Parse()

	cfg, err := ops.Load(*configPath)
	if err != nil {
		logs.Errorf("datagen: load config: %v", err)
		os.Exit(1)
	}
	if err := write(cfg, *records, *trades, *inquiries); err != nil {
		logs.Errorf("datagen: %v", err)
		os.Exit(1)
	}
}

func write(cfg ops.Loaded, records, trades, inquiries int) error {
	if err := os.MkdirAll(cfg.Feeds.Dir, 0o755); err != nil {
		return err
	}
	files := []struct {
		name  string
		write func(f *os.File) error
	}{
		{cfg.Feeds.Prices, func(f *os.File) error {
			return datagen.WritePrices(f, cfg.Catalog, records)
		}},
		{cfg.Feeds.MarketData, func(f *os.File) error {
			return datagen.WriteMarketData(f, cfg.Catalog, records)
		}},
		{cfg.Feeds.Trades, func(f *os.File) error {
			return datagen.WriteTrades(f, cfg.Catalog, cfg.Books, trades)
		}},
		{cfg.Feeds.Inquiries, func(f *os.File) error {
			return datagen.WriteInquiries(f, cfg.Catalog, inquiries)
		}},
	}
	for _, feed := range files {
		path := filepath.Join(cfg.Feeds.Dir, feed.name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = feed.write(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		logs.Infof("datagen: wrote %s", path)
	}
	return nil
}
