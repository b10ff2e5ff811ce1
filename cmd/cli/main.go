package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ygglist/ygglist/internal/export"
	"github.com/ygglist/ygglist/internal/importer"
	"github.com/ygglist/ygglist/internal/jobs"
	"github.com/ygglist/ygglist/internal/logger"
	"github.com/ygglist/ygglist/internal/nfce"
	"github.com/ygglist/ygglist/internal/reports"
	"github.com/ygglist/ygglist/internal/storage"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "report":
		runReport(log)
	case "export":
		runExport(log)
	case "import":
		runImport(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("YggList CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  report    Print a spending report for a month or date range")
	fmt.Println("  export    Write a report as CSV or chart (SVG/PNG)")
	fmt.Println("  import    Import an NFC-e receipt from a URL or text file")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func openStore(log zerolog.Logger, path string) *storage.Store {
	store, err := storage.New(path, log)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to open data file")
	}
	return store
}

func dataFlag(fs *flag.FlagSet) *string {
	def := os.Getenv("YGGLIST_DATA")
	if def == "" {
		def = "data/ygglist.json"
	}
	return fs.String("data", def, "path of the JSON data file")
}

func buildReport(log zerolog.Logger, store *storage.Store, month, from, to string) reports.Report {
	purchases := store.Purchases()

	if month == "" && from == "" && to == "" {
		month = time.Now().Format("2006-01")
	}
	if month != "" {
		r, err := reports.BuildMonth(purchases, month)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid month, use YYYY-MM")
		}
		return r
	}

	r, err := reports.Build(purchases, from, to)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid range, use YYYY-MM-DD")
	}
	return r
}

func runReport(log zerolog.Logger) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	data := dataFlag(fs)
	month := fs.String("month", "", "calendar month (YYYY-MM), with previous-month comparison")
	from := fs.String("from", "", "range start (YYYY-MM-DD)")
	to := fs.String("to", "", "range end (YYYY-MM-DD)")
	fs.Parse(os.Args[2:])

	store := openStore(log, *data)
	r := buildReport(log, store, *month, *from, *to)

	fmt.Printf("=== Gastos %s a %s ===\n", r.FromISO, r.ToISO)
	fmt.Printf("Total: R$ %s\n", r.Total.StringFixed(2))

	if len(r.ByCategory) > 0 {
		fmt.Println("\nPor categoria:")
		for _, row := range r.ByCategory {
			fmt.Printf("  %-12s R$ %10s  %5s%%\n", row.Label, row.Amount.StringFixed(2), row.Pct.StringFixed(1))
		}
	}
	if len(r.ByStore) > 0 {
		fmt.Println("\nPor loja:")
		for _, row := range r.ByStore {
			fmt.Printf("  %-20s R$ %10s  %5s%%\n", row.Label, row.Amount.StringFixed(2), row.Pct.StringFixed(1))
		}
	}
	if r.Comparison != nil {
		fmt.Printf("\nMês anterior (%s a %s): R$ %s\n",
			r.Comparison.PrevFromISO, r.Comparison.PrevToISO, r.Comparison.PrevTotal.StringFixed(2))
		if r.Comparison.ChangePct != nil {
			fmt.Printf("Variação: %s%%\n", r.Comparison.ChangePct.StringFixed(1))
		} else {
			fmt.Println("Variação: N/A (sem gastos no mês anterior)")
		}
	}
}

func runExport(log zerolog.Logger) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	data := dataFlag(fs)
	month := fs.String("month", "", "calendar month (YYYY-MM)")
	from := fs.String("from", "", "range start (YYYY-MM-DD)")
	to := fs.String("to", "", "range end (YYYY-MM-DD)")
	format := fs.String("format", "csv", "output format: csv, svg or png")
	out := fs.String("out", "", "output file (defaults to gastos.<format>)")
	fs.Parse(os.Args[2:])

	store := openStore(log, *data)
	r := buildReport(log, store, *month, *from, *to)

	var (
		payload []byte
		err     error
	)
	switch *format {
	case "csv":
		payload, err = export.CSV(r, store.Purchases())
	case "svg":
		payload = export.ChartSVG(r.Daily)
	case "png":
		payload, err = export.ChartPNG(r.Daily)
	default:
		log.Fatal().Str("format", *format).Msg("Unknown format, use csv, svg or png")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	path := *out
	if path == "" {
		path = "gastos." + *format
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write output file")
	}
	fmt.Printf("Exported %s (%d bytes)\n", path, len(payload))
}

func runImport(log zerolog.Logger) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	data := dataFlag(fs)
	url := fs.String("url", "", "NFC-e receipt page URL")
	file := fs.String("file", "", "path of a text file with the pasted receipt")
	location := fs.String("location", "", "target bucket location (defaults to the parsed store)")
	date := fs.String("date", "", "target bucket date YYYY-MM-DD (defaults to the parsed date)")
	fs.Parse(os.Args[2:])

	if (*url == "") == (*file == "") {
		log.Fatal().Msg("Provide exactly one of -url or -file")
	}

	job := &jobs.ImportReceiptJob{
		JobID:    "cli",
		Location: *location,
		DateISO:  *date,
	}
	if *url != "" {
		job.Source = jobs.ImportSourceURL
		job.URL = *url
	} else {
		raw, err := os.ReadFile(*file)
		if err != nil {
			log.Fatal().Err(err).Str("path", *file).Msg("Failed to read receipt file")
		}
		job.Source = jobs.ImportSourceText
		job.RawText = string(raw)
	}

	store := openStore(log, *data)
	imp := importer.New(nfce.NewFetcher(nil), store, log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := imp.Handle(ctx, job); err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}
	fmt.Printf("Imported %d items into %s (%s)\n", job.ItemCount, job.Location, job.DateISO)
}
