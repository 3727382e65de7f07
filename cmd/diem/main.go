// Command diem prints and converts calendar dates.
//
// Dates on the command line are YYYY-MM-DD. The csv subcommand reads a CSV
// file with a date column in any charset known to the WHATWG encoding
// index, such as the Shift_JIS holiday list published by the Cabinet Office
// of Japan, and writes one row per date with its ISO form, weekday and
// distance in days from a reference date.
//
// Usage:
//
//	diem today [-tz Europe/London]
//	diem info 2019-12-31
//	diem diff 2021-01-01 2020-01-01
//	diem add 2020-02-28 2
//	diem csv -encoding shift_jis -from 2024-01-01 syukujitsu.csv
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/rabitt1ove/diem"
)

const (
	defaultLayout   = "2006/1/2"
	defaultEncoding = "utf-8"

	// Maximum input size to prevent memory exhaustion on runaway input.
	maxCSVInputSize = 64 * 1024 * 1024
)

var errUsage = errors.New("usage: diem today|info|diff|add|csv [flags] [args]")

func main() {
	log.SetFlags(0)
	log.SetPrefix("diem: ")

	if err := run(os.Args[1:], os.Stdin, os.Stdout, time.Now); err != nil {
		log.Fatalf("%v", err)
	}
}

// run dispatches to the subcommand named by args[0].
func run(args []string, stdin io.Reader, stdout io.Writer, now func() time.Time) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "today":
		return runToday(rest, stdout, now)
	case "info":
		return runInfo(rest, stdout)
	case "diff":
		return runDiff(rest, stdout)
	case "add":
		return runAdd(rest, stdout)
	case "csv":
		return runCSV(rest, stdin, stdout, now)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func runToday(args []string, stdout io.Writer, now func() time.Time) error {
	fs := flag.NewFlagSet("today", flag.ContinueOnError)
	tz := fs.String("tz", "", "IANA time zone name (default local)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := []diem.Option{diem.WithClock(now)}
	if *tz != "" {
		loc, err := time.LoadLocation(*tz)
		if err != nil {
			return fmt.Errorf("loading time zone: %w", err)
		}
		opts = append(opts, diem.WithLocation(loc))
	}
	cal := diem.New(opts...)
	_, err := fmt.Fprintln(stdout, cal.Today().ISOString())
	return err
}

func runInfo(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("info takes one date: %w", errUsage)
	}
	d, err := diem.Parse(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "iso:     %s\nstring:  %s\nweekday: %s\nyearday: %d\n",
		d.ISOString(), d, d.Weekday(), d.YearDay())
	return err
}

func runDiff(args []string, stdout io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("diff takes two dates: %w", errUsage)
	}
	a, err := diem.Parse(args[0])
	if err != nil {
		return err
	}
	b, err := diem.Parse(args[1])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, a.Diff(b))
	return err
}

func runAdd(args []string, stdout io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("add takes a date and a number of days: %w", errUsage)
	}
	d, err := diem.Parse(args[0])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid number of days %q: %w", args[1], err)
	}
	_, err = fmt.Fprintln(stdout, d.AddDays(n).ISOString())
	return err
}

// csvOptions controls convertCSV.
type csvOptions struct {
	column int
	layout string
	from   diem.Diem
}

func runCSV(args []string, stdin io.Reader, stdout io.Writer, now func() time.Time) error {
	fs := flag.NewFlagSet("csv", flag.ContinueOnError)
	encoding := fs.String("encoding", defaultEncoding, "input charset, e.g. shift_jis")
	column := fs.Int("column", 0, "zero-based index of the date column")
	layout := fs.String("layout", defaultLayout, "Go time layout of the date column")
	from := fs.String("from", "", "reference date for day offsets (default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *column < 0 {
		return fmt.Errorf("invalid column %d", *column)
	}

	opts := csvOptions{column: *column, layout: *layout}
	if *from == "" {
		opts.from = diem.New(diem.WithClock(now)).Today()
	} else {
		d, err := diem.Parse(*from)
		if err != nil {
			return fmt.Errorf("invalid -from: %w", err)
		}
		opts.from = d
	}

	in := stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	decoded, err := decodeReader(io.LimitReader(in, maxCSVInputSize), *encoding)
	if err != nil {
		return err
	}
	n, err := convertCSV(decoded, stdout, opts)
	if err != nil {
		return err
	}
	log.Printf("converted %d dates", n)
	return nil
}

// decodeReader wraps r so that it yields UTF-8 from the named charset.
func decodeReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// convertCSV reads dates from the configured column of r and writes
// "iso,weekday,days" rows to w. A first row whose date cell does not parse
// is taken to be a header and skipped; blank date cells are skipped.
func convertCSV(r io.Reader, w io.Writer, opts csvOptions) (int, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	writer := csv.NewWriter(w)

	count := 0
	lineNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("line %d: %w", lineNum+1, err)
		}
		lineNum++

		if opts.column >= len(record) {
			return count, fmt.Errorf("line %d: expected at least %d columns, got %d", lineNum, opts.column+1, len(record))
		}
		cell := strings.TrimSpace(record[opts.column])
		if cell == "" {
			continue
		}

		t, err := time.Parse(opts.layout, cell)
		if err != nil {
			if lineNum == 1 {
				continue
			}
			return count, fmt.Errorf("line %d: invalid date %q: %w", lineNum, cell, err)
		}

		d := diem.FromTime(t)
		row := []string{d.ISOString(), d.Weekday().String(), strconv.Itoa(d.Diff(opts.from))}
		if err := writer.Write(row); err != nil {
			return count, err
		}
		count++
	}

	writer.Flush()
	return count, writer.Error()
}
