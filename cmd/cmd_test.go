package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/vietdv277/irsstat/internal/aggregate"
	"github.com/vietdv277/irsstat/internal/config"
	"github.com/vietdv277/irsstat/internal/hiddennode"
	"github.com/vietdv277/irsstat/internal/source"
	"github.com/vietdv277/irsstat/pkg/provider"
	pkgtypes "github.com/vietdv277/irsstat/pkg/types"
)

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func logLine(scenario, throughput string) string {
	return "Scenario: " + scenario + ", Throughput: " + throughput +
		" Mbps, SNR: 5.0 dB, Data Rate: 2.0 Mbps, Success rate:90.0%"
}

func TestWriteSummary(t *testing.T) {
	sums := []pkgtypes.Summary{
		{Scenario: "LOS", Count: 2, Throughput: 15, SNR: 5.5, DataRate: 2.5, SuccessRate: 92.5},
	}

	tests := []struct {
		style   string
		want    string
		wantErr bool
	}{
		{style: "", want: "[LOS] Throughput: 15.00 Mbps, SNR: 5.50 dB, Data Rate: 2.50 Mbps, Success Rate: 92.50%\n"},
		{style: "text", want: "[LOS] Throughput: 15.00 Mbps"},
		{style: "yaml", want: "scenario: LOS"},
		{style: "table", want: "Scenario"},
		{style: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeSummary(&buf, sums, tt.style)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("writeSummary: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestLoadBuckets(t *testing.T) {
	path := writeLog(t, logLine("LOS", "10.0"), logLine("IRS", "20.0"), logLine("LOS", "20.0"))

	b, err := loadBuckets(context.Background(), source.NewOpener(), path, "")
	if err != nil {
		t.Fatalf("loadBuckets: %v", err)
	}
	if b.Total() != 3 {
		t.Errorf("Total() = %d, want 3", b.Total())
	}
	if got := strings.Join(b.Scenarios(), ","); got != "LOS,IRS" {
		t.Errorf("Scenarios() = %s, want LOS,IRS", got)
	}

	if _, err := loadBuckets(context.Background(), source.NewOpener(), path, "xml"); !errors.Is(err, aggregate.ErrUnknownFormat) {
		t.Errorf("unknown format error = %v", err)
	}
}

func TestExportColumns(t *testing.T) {
	path := writeLog(t,
		logLine("LOS", "10"), logLine("IRS", "20.5"),
		logLine("LOS", "11"), logLine("IRS", "21"),
	)
	ctx := context.Background()
	o := source.NewOpener()

	b, err := loadBuckets(ctx, o, path, "legacy")
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "validation.dat")
	n, err := exportColumns(ctx, o, b, []string{"IRS", "LOS"}, out)
	if err != nil {
		t.Fatalf("exportColumns: %v", err)
	}
	if n != 2 {
		t.Errorf("rows = %d, want 2", n)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if want := "20.5 10.0\n21.0 11.0\n"; string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestExportColumnsMismatchWritesNothing(t *testing.T) {
	path := writeLog(t, logLine("LOS", "10"), logLine("LOS", "11"), logLine("IRS", "20"))
	ctx := context.Background()
	o := source.NewOpener()

	b, err := loadBuckets(ctx, o, path, "legacy")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	out := filepath.Join(dir, "validation.dat")
	if _, err := exportColumns(ctx, o, b, []string{"LOS", "IRS"}, out); !errors.Is(err, aggregate.ErrLengthMismatch) {
		t.Fatalf("error = %v, want ErrLengthMismatch", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no output, found %d entries", len(entries))
	}
}

func TestProcessHiddenNode(t *testing.T) {
	dir := t.TempDir()
	runs := map[int]string{
		1: "Time,Scenario,Tx1_Throughput,Tx2_Throughput\n1,IRS,10,4\n1,Baseline,2,2\n",
		2: "Time,Scenario,Tx1_Throughput,Tx2_Throughput\n1,IRS,20,6\n1,Baseline,4,4\n",
	}
	for run, body := range runs {
		name := filepath.Join(dir, fmt.Sprintf("hn_%d.csv", run))
		if err := os.WriteFile(name, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.Default()
	cfg.Plot.Format = "svg"
	rs := hiddennode.RunSet{Dir: dir, Pattern: "hn_%d.csv", First: 1, Last: 2}

	out := t.TempDir()
	csvOut := filepath.Join(out, "avg.csv")
	chart := filepath.Join(out, "hn.svg")

	n, err := processHiddenNode(context.Background(), source.NewOpener(), rs, cfg, csvOut, chart)
	if err != nil {
		t.Fatalf("processHiddenNode: %v", err)
	}
	if n != 2 {
		t.Errorf("points = %d, want 2", n)
	}

	data, err := os.ReadFile(csvOut)
	if err != nil {
		t.Fatal(err)
	}
	want := "Time,Scenario,Tx1_Throughput,Tx2_Throughput,Runs\n1,Baseline,3,3,2\n1,IRS,15,5,2\n"
	if string(data) != want {
		t.Errorf("csv = %q, want %q", data, want)
	}
	if info, err := os.Stat(chart); err != nil || info.Size() == 0 {
		t.Errorf("chart not written: %v", err)
	}
}

// memStore is an in-memory remote used in place of S3
type memStore map[string][]byte

func (m memStore) Open(_ context.Context, location string) (io.ReadCloser, error) {
	data, ok := m[location]
	if !ok {
		return nil, provider.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m memStore) Put(_ context.Context, location string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m[location] = data
	return nil
}

func TestProcessHiddenNodeRemoteOutputs(t *testing.T) {
	remote := memStore{
		"mem://runs/hn_1.csv": []byte("Time,Scenario,Tx1_Throughput,Tx2_Throughput\n1,IRS,10,4\n"),
	}
	o := source.NewOpener()
	o.Register("mem", remote)

	cwd := t.TempDir()
	chdir(t, cwd)

	cfg := config.Default()
	cfg.Plot.Format = "svg"
	cfg.Plot.ColorMap = "moreland"
	rs := hiddennode.RunSet{Dir: "mem://runs", Pattern: "hn_%d.csv", First: 1, Last: 1}

	_, err := processHiddenNode(context.Background(), o, rs, cfg, "mem://out/avg.csv", "mem://out/hn.svg")
	if err != nil {
		t.Fatalf("processHiddenNode: %v", err)
	}

	if len(remote["mem://out/hn.svg"]) == 0 {
		t.Error("chart was not uploaded")
	}
	if !strings.HasPrefix(string(remote["mem://out/avg.csv"]), "Time,Scenario") {
		t.Errorf("csv = %q", remote["mem://out/avg.csv"])
	}
	if entries, _ := os.ReadDir(cwd); len(entries) != 0 {
		t.Errorf("unexpected local files: %v", entries)
	}
}

func TestWriteVersion(t *testing.T) {
	info := &debug.BuildInfo{
		GoVersion: "go1.25.0",
		Settings:  []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
	}

	var buf bytes.Buffer
	writeVersion(&buf, info)
	for _, want := range []string{"irsstat\n", "Commit:     abc123", "Go:         go1.25.0"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output %q does not contain %q", buf.String(), want)
		}
	}

	buf.Reset()
	writeVersion(&buf, nil)
	if !strings.Contains(buf.String(), "Go:         unknown") {
		t.Errorf("output without build info = %q", buf.String())
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
