package aggregate

import (
	"errors"
	"fmt"
	"testing"
)

func legacyLine(scenario string, tp, snr, dr, sr float64) string {
	return fmt.Sprintf("Scenario: %s, Throughput: %.1f Mbps, SNR: %.1f dB, Data Rate: %.1f Mbps, Success rate:%.1f%%",
		scenario, tp, snr, dr, sr)
}

func TestParseLogExample(t *testing.T) {
	lines := []string{
		"t LOS t 10.0 t t 5.0 t t t 2.0 t t r:90.0%",
		"t LOS t 20.0 t t 6.0 t t t 3.0 t t r:95.0%",
	}

	b, err := ParseLog(lines)
	if err != nil {
		t.Fatalf("ParseLog: %v", err)
	}
	if got := b.Scenarios(); len(got) != 1 || got[0] != "LOS" {
		t.Fatalf("scenarios = %v, want [LOS]", got)
	}

	evs := b.Events("LOS")
	if len(evs) != 2 {
		t.Fatalf("got %d events, want 2", len(evs))
	}
	if evs[0].Throughput != 10 || evs[0].SNR != 5 || evs[0].DataRate != 2 || evs[0].SuccessRate != 90 {
		t.Errorf("first event = %+v", evs[0])
	}
	if evs[1].Throughput != 20 || evs[1].SuccessRate != 95 {
		t.Errorf("second event = %+v", evs[1])
	}
}

func TestParseLogSimulatorOutput(t *testing.T) {
	line := legacyLine("IRSConstructive", 93.1, 31.2, 135, 99.5)

	b, err := ParseLog([]string{line})
	if err != nil {
		t.Fatalf("ParseLog: %v", err)
	}
	evs := b.Events("IRSConstructive")
	if len(evs) != 1 {
		t.Fatalf("scenarios = %v", b.Scenarios())
	}
	ev := evs[0]
	if ev.Throughput != 93.1 || ev.SNR != 31.2 || ev.DataRate != 135 || ev.SuccessRate != 99.5 {
		t.Errorf("event = %+v", ev)
	}
}

func TestParseLogCountsEveryLine(t *testing.T) {
	scenarios := []string{"LOS", "IRS", "MultiIRS"}
	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, legacyLine(scenarios[i%len(scenarios)], float64(i), 1, 2, 3))
	}
	lines = append(lines, "", "   ")

	b, err := ParseLog(lines)
	if err != nil {
		t.Fatalf("ParseLog: %v", err)
	}
	if b.Total() != 30 {
		t.Errorf("Total() = %d, want 30", b.Total())
	}
	got := b.Scenarios()
	for i, s := range scenarios {
		if got[i] != s {
			t.Errorf("scenario %d = %q, want %q", i, got[i], s)
		}
		if b.Len(s) != 10 {
			t.Errorf("Len(%s) = %d, want 10", s, b.Len(s))
		}
	}

	// log order is preserved inside a bucket
	tps := b.Throughputs("IRS")
	for i := 1; i < len(tps); i++ {
		if tps[i] <= tps[i-1] {
			t.Fatalf("IRS throughputs out of order: %v", tps)
		}
	}
}

func TestParseLogErrors(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		line    int
		wantErr error
	}{
		{
			name:    "missing tokens",
			lines:   []string{"x LOS y 12.5"},
			line:    1,
			wantErr: ErrMissingToken,
		},
		{
			name:    "non numeric throughput",
			lines:   []string{legacyLine("LOS", 1, 2, 3, 4), "t LOS t abc t t 5.0 t t t 2.0 t t r:90.0%"},
			line:    2,
			wantErr: ErrNumericConversion,
		},
		{
			name:    "success rate without key",
			lines:   []string{"t LOS t 10.0 t t 5.0 t t t 2.0 t t 90.0%"},
			line:    1,
			wantErr: ErrMissingToken,
		},
		{
			name:    "non numeric success rate",
			lines:   []string{"t LOS t 10.0 t t 5.0 t t t 2.0 t t r:high%"},
			line:    1,
			wantErr: ErrNumericConversion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseLog(tt.lines)
			if b != nil {
				t.Errorf("expected no buckets, got %v", b.Scenarios())
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err %T is not a *ParseError", err)
			}
			if pe.Line != tt.line {
				t.Errorf("Line = %d, want %d", pe.Line, tt.line)
			}
		})
	}
}

func TestParseLogFormats(t *testing.T) {
	tests := []struct {
		format Format
		line   string
	}{
		{FormatLegacy, legacyLine("IRS", 80.5, 25, 120, 97.5)},
		{FormatKV, "scenario=IRS throughput=80.5 snr=25 datarate=120 success=97.5%"},
		{FormatKV, "scenario=IRS success_rate=97.5 snr=25 datarate=120 throughput=80.5 run=3"},
		{FormatJSONL, `{"scenario":"IRS","throughput":80.5,"snr":25,"datarate":120,"success":97.5}`},
		{FormatJSONL, `{"scenario":"IRS","throughput":80.5,"snr":25,"datarate":120,"success_rate":97.5}`},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			b, err := ParseLogFormat([]string{tt.line}, tt.format)
			if err != nil {
				t.Fatalf("ParseLogFormat: %v", err)
			}
			evs := b.Events("IRS")
			if len(evs) != 1 {
				t.Fatalf("scenarios = %v", b.Scenarios())
			}
			ev := evs[0]
			if ev.Throughput != 80.5 || ev.SNR != 25 || ev.DataRate != 120 || ev.SuccessRate != 97.5 {
				t.Errorf("event = %+v", ev)
			}
		})
	}
}

func TestParseLogFormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		line    string
		wantErr error
	}{
		{"kv missing snr", FormatKV, "scenario=LOS throughput=1 datarate=2 success=3", ErrMissingToken},
		{"kv bad number", FormatKV, "scenario=LOS throughput=x snr=1 datarate=2 success=3", ErrNumericConversion},
		{"json broken", FormatJSONL, `{"scenario":"LOS"`, ErrMissingToken},
		{"json string number", FormatJSONL, `{"scenario":"LOS","throughput":"fast","snr":1,"datarate":2,"success":3}`, ErrNumericConversion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLogFormat([]string{tt.line}, tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"", "legacy", "KV", "jsonl"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q): %v", name, err)
		}
	}
	if _, err := ParseFormat("csv"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(csv) err = %v", err)
	}
}
