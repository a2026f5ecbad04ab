package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/joho/godotenv"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"main/internal/booking"
	"main/internal/catalog"
	"main/internal/datagen"
	"main/internal/execution"
	"main/internal/fabric"
	"main/internal/histdata"
	"main/internal/inquiry"
	"main/internal/marketdata"
	"main/internal/model"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/position"
	"main/internal/pricing"
	"main/internal/risk"
	"main/internal/streaming"
	"main/pkg/conn"
)

func fatalf(format string, args ...any) {
	logs.Errorf(format, args...)
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "", "Path to JSON config (empty=built-in default desk)")
	generate := flag.Bool("generate", false, "Generate feed files before the run")
	records := flag.Int("records", 100, "Records per product when generating feeds")
	profileAddr := flag.String("profile-addr", "", "Pyroscope server address (empty=disabled)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logs.Warnf("desk: load .env: %v", err)
	}

	if *profileAddr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "desk",
			ServerAddress:   *profileAddr,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			fatalf("desk: pyroscope start: %v", err)
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	cfg, err := ops.Load(*configPath)
	if err != nil {
		fatalf("desk: load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-sys.Shutdown()
		cancel()
	}()

	if *generate {
		if err := generateFeeds(cfg, *records); err != nil {
			fatalf("desk: generate feeds: %v", err)
		}
	}

	if err := run(ctx, cfg); err != nil {
		fatalf("desk: %v", err)
	}
}

func run(ctx context.Context, cfg ops.Loaded) error {
	metrics := obs.NewMetrics()

	sink, closeSink, err := openSink(cfg.History)
	if err != nil {
		return err
	}
	defer closeSink()

	outDir := cfg.History.Dir
	if outDir == "" {
		outDir = "testdata/hist"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	streamOut, err := os.Create(filepath.Join(outDir, "streamingout.txt"))
	if err != nil {
		return err
	}
	defer streamOut.Close()
	execOut, err := os.Create(filepath.Join(outDir, "executionsout.txt"))
	if err != nil {
		return err
	}
	defer execOut.Close()
	guiOut, err := os.Create(filepath.Join(outDir, "gui.txt"))
	if err != nil {
		return err
	}
	defer guiOut.Close()

	// Quote chain: prices in, streamed quotes out.
	priceSvc := pricing.NewService()
	streamSvc := streaming.NewService(streaming.NewStreamWriter(streamOut), metrics)
	quoteEngine := streaming.NewEngine(streaming.NewCycleLots(cfg.Lots...))
	quoteEngine.AddListener(streaming.NewEngineListener(streamSvc))
	priceSvc.AddListener(quoteEngine)
	priceSvc.AddListener(pricing.NewGUIListener(guiOut, nil))
	streamSvc.AddListener(histdata.NewRecorder(sink, histdata.KindStreaming,
		func(q model.Quote) string { return q.Product.CUSIP }, histdata.RenderQuote))

	// Execution chain: books in, child orders out, fills booked through to
	// positions and risk.
	bookSvc := marketdata.NewService()
	execSvc := execution.NewService(execution.NewExecWriter(execOut), metrics)
	execEngine := execution.NewEngine(execution.NewAlternateSides(), execution.UUIDSource{})
	execEngine.AddListener(execution.NewEngineListener(execSvc))
	bookSvc.AddListener(execEngine)
	execSvc.AddListener(histdata.NewRecorder(sink, histdata.KindExecution,
		func(o model.ExecutionOrder) string { return o.Product.CUSIP }, histdata.RenderExecution))

	tradeSvc := booking.NewService(metrics)
	execSvc.AddListener(booking.NewExecutionListener(tradeSvc, cfg.Books))

	posSvc := position.NewService()
	tradeSvc.AddListener(position.NewTradeListener(posSvc))
	posSvc.AddListener(histdata.NewRecorder(sink, histdata.KindPosition,
		func(p model.Position) string { return p.Product.CUSIP }, histdata.RenderPosition))

	riskSvc := risk.NewService(cfg.Catalog)
	posSvc.AddListener(risk.NewPositionListener(riskSvc))
	riskSvc.AddListener(histdata.NewRecorder(sink, histdata.KindRisk,
		func(r model.PV01) string { return r.Product.CUSIP }, histdata.RenderRisk))

	// Inquiry chain: received inquiries are quoted and completed in place.
	inqSvc := inquiry.NewService()
	inqSvc.AddListener(inquiry.NewAutoQuoter(inqSvc))
	inqSvc.AddListener(histdata.NewRecorder(sink, histdata.KindInquiry,
		func(i model.Inquiry) string { return i.InquiryID }, histdata.RenderInquiry))

	// Feeds replay sequentially; every store sees one message at a time.
	feeds := []struct {
		name string
		file string
		sub  fabric.Subscriber
	}{
		{"prices", cfg.Feeds.Prices, pricing.NewSubscriber(priceSvc, cfg.Catalog, metrics)},
		{"market data", cfg.Feeds.MarketData, marketdata.NewSubscriber(bookSvc, cfg.Catalog, metrics)},
		{"trades", cfg.Feeds.Trades, booking.NewSubscriber(tradeSvc, cfg.Catalog, metrics)},
		{"inquiries", cfg.Feeds.Inquiries, inquiry.NewSubscriber(inqSvc, cfg.Catalog, metrics)},
	}
	for _, feed := range feeds {
		path := filepath.Join(cfg.Feeds.Dir, feed.file)
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		logs.Infof("desk: replaying %s feed from %s", feed.name, path)
		err = feed.sub.Subscribe(ctx, f)
		f.Close()
		if err != nil {
			return err
		}
	}

	snap := metrics.Snapshot()
	logs.Infof("desk: done, prices=%d books=%d trades=%d inquiries=%d quotes=%d executions=%d dropped=%d",
		snap.PricesIn, snap.BooksIn, snap.TradesIn, snap.InquiriesIn,
		snap.QuotesOut, snap.ExecutionsOut, snap.Dropped)

	for _, sector := range risk.SectorsFromCatalog(cfg.Catalog, time.Now()) {
		r := riskSvc.BucketedRisk(sector)
		logs.Infof("desk: sector %s pv01=%.2f quantity=%d", sector.Name, r.Value, r.Quantity)
	}
	return nil
}

func openSink(cfg ops.HistoryConfig) (histdata.Sink, func(), error) {
	switch cfg.Backend {
	case "postgres":
		sink, err := histdata.NewPGSink(conn.OptionFromEnv())
		if err != nil {
			return nil, nil, err
		}
		return sink, func() { _ = sink.Close() }, nil
	default:
		dir := cfg.Dir
		if dir == "" {
			dir = "testdata/hist"
		}
		sink, err := histdata.NewFileSink(dir)
		if err != nil {
			return nil, nil, err
		}
		return sink, func() { _ = sink.Close() }, nil
	}
}

func generateFeeds(cfg ops.Loaded, records int) error {
	if err := os.MkdirAll(cfg.Feeds.Dir, 0o755); err != nil {
		return err
	}
	writers := []struct {
		file  string
		write func(f *os.File, cat *catalog.Catalog) error
	}{
		{cfg.Feeds.Prices, func(f *os.File, cat *catalog.Catalog) error {
			return datagen.WritePrices(f, cat, records)
		}},
		{cfg.Feeds.MarketData, func(f *os.File, cat *catalog.Catalog) error {
			return datagen.WriteMarketData(f, cat, records)
		}},
		{cfg.Feeds.Trades, func(f *os.File, cat *catalog.Catalog) error {
			return datagen.WriteTrades(f, cat, cfg.Books, 10)
		}},
		{cfg.Feeds.Inquiries, func(f *os.File, cat *catalog.Catalog) error {
			return datagen.WriteInquiries(f, cat, 10)
		}},
	}
	for _, w := range writers {
		path := filepath.Join(cfg.Feeds.Dir, w.file)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = w.write(f, cfg.Catalog)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		logs.Infof("desk: wrote %s", path)
	}
	return nil
}
