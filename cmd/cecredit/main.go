// Command cecredit runs the credit reporting pipeline once over a local
// attendance export and writes the report CSV.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kbenson/cecredit/internal/logging"
	"github.com/kbenson/cecredit/internal/report"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "attendance export file (required)")
		seedPath   = flag.String("seed", "", "YAML seed document with overrides and manual attendees")
		outPath    = flag.String("out", "", "output file (default: seed output setting, else stdout)")
		title      = flag.String("title", "", "meeting title")
		start      = flag.String("start", "", "scheduled session start")
		end        = flag.String("end", "", "scheduled session end")
		bizEnd     = flag.String("business-end", "", "business window end")
		maxCredit  = flag.Float64("max-credit", 0, "maximum awardable credit")
		grace      = flag.Int("grace", report.DefaultGraceMinutes, "late-join grace minutes (0 disables)")
		certColumn = flag.String("cert-column", "", "export column holding the certificate id")
		asJSON     = flag.Bool("json", false, "write the full report as JSON instead of CSV")
		logLevel   = flag.String("log-level", "warn", "log level: debug, info, warn, error")
	)
	flag.Parse()

	logging.Setup(*logLevel, "text")

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "cecredit: -input is required")
		flag.Usage()
		os.Exit(2)
	}

	blob, err := os.ReadFile(*inputPath)
	if err != nil {
		fatal("read export", err)
	}

	var seed *report.Seed
	if *seedPath != "" {
		data, err := os.ReadFile(*seedPath)
		if err != nil {
			fatal("read seed", err)
		}
		if seed, err = report.ParseSeed(data); err != nil {
			fatal("parse seed", err)
		}
	}

	rep, err := report.Generate(blob, seed, report.Options{
		MeetingTitle:   *title,
		MaxCredit:      *maxCredit,
		GraceMinutes:   grace,
		ScheduledStart: *start,
		ScheduledEnd:   *end,
		BusinessEnd:    *bizEnd,
		CertColumn:     *certColumn,
	})
	if err != nil {
		fatal("generate report", err)
	}

	dest := *outPath
	if dest == "" && seed != nil && seed.Settings.Output != nil {
		dest = *seed.Settings.Output
	}

	var out io.Writer = os.Stdout
	if dest != "" && dest != "-" {
		f, err := os.Create(dest)
		if err != nil {
			fatal("create output", err)
		}
		defer f.Close()
		out = f
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			fatal("write report", err)
		}
	} else if err := rep.WriteCSV(out); err != nil {
		fatal("write report", err)
	}

	slog.Info("report written",
		"rows", len(rep.Rows),
		"skips", len(rep.Skips),
		"output", dest,
	)
}

func fatal(context string, err error) {
	fmt.Fprintf(os.Stderr, "cecredit: %s: %v\n", context, err)
	os.Exit(1)
}
