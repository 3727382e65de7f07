package main

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/japanese"

	"github.com/rabitt1ove/diem"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard) // Silence progress logging in tests.
	os.Exit(m.Run())
}

// fixedNow is 2020-03-31 23:30 UTC: April 1 in London, March 31 in New York.
func fixedNow() time.Time {
	return time.Date(2020, time.March, 31, 23, 30, 0, 0, time.UTC)
}

func runString(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, strings.NewReader(stdin), &out, fixedNow)
	return out.String(), err
}

// --- dispatch ---

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{nil, {"bogus"}} {
		_, err := runString(t, "", args...)
		if !errors.Is(err, errUsage) {
			t.Errorf("run(%q) error = %v, want errUsage", args, err)
		}
	}
}

// --- today ---

func TestToday(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tz   string
		want string
	}{
		{"UTC", "2020-03-31\n"},
		{"Europe/London", "2020-04-01\n"},
		{"America/New_York", "2020-03-31\n"},
		{"Asia/Tokyo", "2020-04-01\n"},
	}
	for _, tt := range tests {
		t.Run(tt.tz, func(t *testing.T) {
			got, err := runString(t, "", "today", "-tz", tt.tz)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("today -tz %s = %q, want %q", tt.tz, got, tt.want)
			}
		})
	}
}

func TestToday_UnknownZone(t *testing.T) {
	t.Parallel()

	if _, err := runString(t, "", "today", "-tz", "Mars/Olympus_Mons"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}

// --- info, diff, add ---

func TestInfo(t *testing.T) {
	t.Parallel()

	got, err := runString(t, "", "info", "2019-12-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "iso:     2019-12-31\nstring:  Tue Dec 31 2019\nweekday: Tuesday\nyearday: 365\n"
	if got != want {
		t.Errorf("info = %q, want %q", got, want)
	}
}

func TestInfo_Invalid(t *testing.T) {
	t.Parallel()

	_, err := runString(t, "", "info", "2019-02-29")
	if !errors.Is(err, diem.ErrInvalidDate) {
		t.Errorf("error = %v, want ErrInvalidDate", err)
	}
	if _, err := runString(t, "", "info"); !errors.Is(err, errUsage) {
		t.Errorf("info with no date: error = %v, want errUsage", err)
	}
}

func TestDiff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want string
	}{
		{"2021-01-01", "2020-01-01", "366\n"},
		{"2020-01-01", "2020-01-02", "-1\n"},
		{"2020-03-30", "2020-03-27", "3\n"},
	}
	for _, tt := range tests {
		got, err := runString(t, "", "diff", tt.a, tt.b)
		if err != nil {
			t.Fatalf("diff %s %s: unexpected error: %v", tt.a, tt.b, err)
		}
		if got != tt.want {
			t.Errorf("diff %s %s = %q, want %q", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDiff_BadArgs(t *testing.T) {
	t.Parallel()

	if _, err := runString(t, "", "diff", "2020-01-01"); !errors.Is(err, errUsage) {
		t.Errorf("error = %v, want errUsage", err)
	}
	if _, err := runString(t, "", "diff", "2020-01-01", "2020-13-01"); !errors.Is(err, diem.ErrInvalidDate) {
		t.Errorf("error = %v, want ErrInvalidDate", err)
	}
}

func TestAdd(t *testing.T) {
	t.Parallel()

	got, err := runString(t, "", "add", "2020-02-28", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2020-03-01\n" {
		t.Errorf("add = %q, want 2020-03-01", got)
	}

	if _, err := runString(t, "", "add", "2020-02-28", "two"); err == nil {
		t.Error("expected error for non-numeric days")
	}
}

// --- csv ---

func TestConvertCSV_Valid(t *testing.T) {
	t.Parallel()

	in := "国民の祝日・休日月日,国民の祝日・休日名称\r\n2024/1/1,元日\r\n2024/1/8,成人の日\r\n"
	var out bytes.Buffer
	n, err := convertCSV(strings.NewReader(in), &out, csvOptions{layout: defaultLayout, from: diem.MustParse("2024-01-01")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 dates, got %d", n)
	}
	want := "2024-01-01,Monday,0\n2024-01-08,Monday,7\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestConvertCSV_NoHeader(t *testing.T) {
	t.Parallel()

	in := "2024/1/1,元日\n2024/1/8,成人の日\n"
	var out bytes.Buffer
	n, err := convertCSV(strings.NewReader(in), &out, csvOptions{layout: defaultLayout, from: diem.MustParse("2024-01-08")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 dates, got %d", n)
	}
	if !strings.HasPrefix(out.String(), "2024-01-01,Monday,-7\n") {
		t.Errorf("output = %q", out.String())
	}
}

func TestConvertCSV_InvalidDate(t *testing.T) {
	t.Parallel()

	in := "date,name\n2024/1/1,元日\nnot-a-date,元日\n"
	_, err := convertCSV(strings.NewReader(in), io.Discard, csvOptions{layout: defaultLayout})
	if err == nil {
		t.Fatal("expected error for invalid date")
	}
	if !strings.Contains(err.Error(), "line 3: invalid date") {
		t.Errorf("error should mention the line and invalid date, got: %v", err)
	}
}

func TestConvertCSV_TooFewColumns(t *testing.T) {
	t.Parallel()

	in := "name,date\n元日,2024/1/1\n成人の日\n"
	_, err := convertCSV(strings.NewReader(in), io.Discard, csvOptions{column: 1, layout: defaultLayout})
	if err == nil {
		t.Fatal("expected error for too few columns")
	}
}

func TestConvertCSV_EmptyRows(t *testing.T) {
	t.Parallel()

	in := "date,name\n2024/1/1,元日\n,\n2024/5/3,憲法記念日\n"
	var out bytes.Buffer
	n, err := convertCSV(strings.NewReader(in), &out, csvOptions{layout: defaultLayout, from: diem.MustParse("2024-01-01")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 dates (empty row skipped), got %d", n)
	}
}

func TestConvertCSV_CustomLayout(t *testing.T) {
	t.Parallel()

	in := "31.12.2019\n29.02.2020\n"
	var out bytes.Buffer
	_, err := convertCSV(strings.NewReader(in), &out, csvOptions{layout: "02.01.2006", from: diem.MustParse("2020-01-01")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "2019-12-31,Tuesday,-1\n2020-02-29,Saturday,59\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunCSV_ShiftJISFile(t *testing.T) {
	t.Parallel()

	utf8 := "国民の祝日・休日月日,国民の祝日・休日名称\r\n2024/5/3,憲法記念日\r\n2024/5/6,休日\r\n"
	sjis, err := japanese.ShiftJIS.NewEncoder().String(utf8)
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "syukujitsu.csv")
	if err := os.WriteFile(path, []byte(sjis), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	got, err := runString(t, "", "csv", "-encoding", "shift_jis", "-from", "2024-05-01", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "2024-05-03,Friday,2\n2024-05-06,Monday,5\n"
	if got != want {
		t.Errorf("csv = %q, want %q", got, want)
	}
}

func TestRunCSV_StdinDefaultsToToday(t *testing.T) {
	t.Parallel()

	// Without -from the reference is today in the host's zone.
	from := diem.New(diem.WithClock(fixedNow)).Today()
	want := "2020-04-01,Wednesday," + strconv.Itoa(diem.MustParse("2020-04-01").Diff(from)) + "\n"

	got, err := runString(t, "2020/4/1\n", "csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("csv = %q, want %q", got, want)
	}
}

func TestRunCSV_BadFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown encoding", []string{"csv", "-encoding", "klingon"}},
		{"negative column", []string{"csv", "-column", "-1"}},
		{"bad from", []string{"csv", "-from", "yesterday"}},
		{"missing file", []string{"csv", filepath.Join(t.TempDir(), "missing.csv")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runString(t, "2024/1/1\n", tt.args...); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestDecodeReader_UTF8(t *testing.T) {
	t.Parallel()

	r, err := decodeReader(strings.NewReader("元日"), defaultEncoding)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if string(b) != "元日" {
		t.Errorf("decoded = %q, want 元日", b)
	}
}
