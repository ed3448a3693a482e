// Command maechul-report renders a month report from a workbook on the
// command line, without starting the server. Useful for checking a file
// before uploading it, or minting a share link from a script.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"maechul/internal/cli"
	"maechul/internal/core"
	"maechul/internal/ingest"
	"maechul/internal/report"
	"maechul/internal/share"
)

func main() {
	var (
		file    = flag.String("file", "", "path to the xlsx workbook (required)")
		year    = flag.Int("year", 0, "report year (default: current)")
		month   = flag.Int("month", 0, "report month 1-12 (default: current)")
		notes   = flag.String("notes", "", "report notes to embed in the share link")
		mint    = flag.Bool("share", false, "print a share link for the month")
		baseURL = flag.String("base-url", "", "base URL for the share link (default: from config)")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: maechul-report -file <sales.xlsx> [-year Y -month M] [-share]")
		os.Exit(2)
	}

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)
	classifier := cli.BuildClassifier(logger, cfg)

	now := time.Now()
	if *year == 0 {
		*year = now.Year()
	}
	if *month == 0 {
		*month = int(now.Month())
	}
	if *month < 1 || *month > 12 {
		fmt.Fprintf(os.Stderr, "invalid month %d\n", *month)
		os.Exit(2)
	}
	if *baseURL == "" {
		*baseURL = cfg.BaseURL
	}

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open workbook: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	parser := ingest.NewParser(
		ingest.ColumnLayout{
			DateCol:   cfg.DateColumn,
			AmountCol: cfg.AmountColumn,
			LabelCol:  cfg.LabelColumn,
		},
		cfg.HeaderMarkers,
		cfg.HeaderScanRows,
		classifier,
	)
	records, err := parser.Parse(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse workbook: %v\n", err)
		os.Exit(1)
	}

	engine := report.NewEngine(classifier.Categories())
	summary := engine.Aggregate(records, *year, *month)
	printSummary(summary)

	if *mint {
		var monthRecords []core.SalesRecord
		for _, r := range records {
			if r.In(*year, *month) {
				monthRecords = append(monthRecords, r)
			}
		}
		link, err := share.Encode(*baseURL, *year, *month, monthRecords, *notes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "share link: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\n공유 링크 (%d자):\n%s\n", len(link.URL), link.URL)
		if link.OversizedFor(cfg.ShareURLWarnLength) {
			fmt.Println("경고: 링크가 길어 일부 메신저에서 잘릴 수 있습니다.")
		}
	}
}

func printSummary(s report.Summary) {
	fmt.Printf("%s 매출 보고\n\n", share.MonthLabel(s.Year, s.Month))
	fmt.Printf("  지난달  %14s\n", won(s.PrevTotal))
	fmt.Printf("  이번달  %14s  (%+.1f%%)\n", won(s.Total), s.PrevChange())
	fmt.Printf("  다음달  %14s\n\n", won(s.NextTotal))

	fmt.Println("카테고리별:")
	for _, c := range s.Categories {
		fmt.Printf("  %-12s %14s  (%.1f%%)\n", c.Name, won(c.Amount), s.CategoryShare(c.Name))
	}

	if len(s.Weeks) > 0 {
		fmt.Println("\n주차별:")
		for _, w := range s.Weeks {
			fmt.Printf("  %d주차  %14s\n", w.Week, won(w.Total))
		}
	}
}

func won(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(int64(amount+0.5), 10)
	out := ""
	for len(digits) > 3 {
		out = "," + digits[len(digits)-3:] + out
		digits = digits[:len(digits)-3]
	}
	out = digits + out
	if neg {
		return "-₩" + out
	}
	return "₩" + out
}
