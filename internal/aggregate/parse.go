package aggregate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/valyala/fastjson"
	"github.com/vietdv277/irsstat/pkg/types"
)

// Format selects how a log line is decoded into an Event
type Format string

const (
	// FormatLegacy is the fixed-position line printed by the validation
	// example, e.g. "Scenario: LOS, Throughput: 93.1 Mbps, SNR: 31.2 dB, Data Rate: 135.0 Mbps, Success rate:99.5%"
	FormatLegacy Format = "legacy"
	// FormatKV is "scenario=LOS throughput=93.1 snr=31.2 datarate=135 success=99.5"
	FormatKV Format = "kv"
	// FormatJSONL is one JSON object per line with the same keys as FormatKV
	FormatJSONL Format = "jsonl"
)

// Token positions of the legacy format
const (
	legacyScenarioIdx   = 1
	legacyThroughputIdx = 3
	legacySNRIdx        = 6
	legacyDataRateIdx   = 10
	legacySuccessIdx    = 13
	legacyMinTokens     = legacySuccessIdx + 1
)

// Formats lists the supported line formats
var Formats = []Format{FormatLegacy, FormatKV, FormatJSONL}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatLegacy, nil
	}
	for _, f := range Formats {
		if string(f) == strings.ToLower(name) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, name)
}

type lineDecoder func(line string) (types.Event, error)

func decoderFor(f Format) (lineDecoder, error) {
	switch f {
	case FormatLegacy, "":
		return decodeLegacy, nil
	case FormatKV:
		return decodeKV, nil
	case FormatJSONL:
		var p fastjson.Parser
		return func(line string) (types.Event, error) {
			return decodeJSON(&p, line)
		}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
}

// ParseLog parses legacy-format lines into scenario buckets
func ParseLog(lines []string) (*Buckets, error) {
	return ParseLogFormat(lines, FormatLegacy)
}

// ParseLogFormat parses lines in the given format into scenario buckets.
// Blank lines are skipped. On the first bad line a *ParseError is returned
// and no buckets.
func ParseLogFormat(lines []string, f Format) (*Buckets, error) {
	decode, err := decoderFor(f)
	if err != nil {
		return nil, err
	}

	b := NewBuckets()
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		ev, err := decode(line)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Text: line, Err: err}
		}
		b.Add(ev)
	}
	return b, nil
}

func decodeLegacy(line string) (types.Event, error) {
	tokens := strings.Fields(line)
	if len(tokens) < legacyMinTokens {
		return types.Event{}, fmt.Errorf("%w: got %d tokens, need %d", ErrMissingToken, len(tokens), legacyMinTokens)
	}

	scenario := strings.TrimRightFunc(tokens[legacyScenarioIdx], unicode.IsPunct)
	if scenario == "" {
		return types.Event{}, fmt.Errorf("%w: empty scenario label", ErrMissingToken)
	}

	_, rate, ok := strings.Cut(tokens[legacySuccessIdx], ":")
	if !ok {
		return types.Event{}, fmt.Errorf("%w: success rate %q is not key:value", ErrMissingToken, tokens[legacySuccessIdx])
	}

	ev := types.Event{Scenario: scenario}
	var err error
	if ev.Throughput, err = parseNumber("throughput", tokens[legacyThroughputIdx]); err != nil {
		return types.Event{}, err
	}
	if ev.SNR, err = parseNumber("snr", tokens[legacySNRIdx]); err != nil {
		return types.Event{}, err
	}
	if ev.DataRate, err = parseNumber("datarate", tokens[legacyDataRateIdx]); err != nil {
		return types.Event{}, err
	}
	if ev.SuccessRate, err = parseNumber("success rate", strings.TrimSuffix(rate, "%")); err != nil {
		return types.Event{}, err
	}
	return ev, nil
}

func decodeKV(line string) (types.Event, error) {
	fields := make(map[string]string)
	for _, tok := range strings.Fields(line) {
		k, v, ok := strings.Cut(tok, "=")
		if !ok {
			continue
		}
		fields[strings.ToLower(k)] = v
	}

	ev := types.Event{Scenario: fields["scenario"]}
	if ev.Scenario == "" {
		return types.Event{}, fmt.Errorf("%w: scenario", ErrMissingToken)
	}

	if v, ok := fields["success_rate"]; ok {
		fields["success"] = v
	}
	targets := []struct {
		key string
		dst *float64
	}{
		{"throughput", &ev.Throughput},
		{"snr", &ev.SNR},
		{"datarate", &ev.DataRate},
		{"success", &ev.SuccessRate},
	}
	for _, t := range targets {
		raw, ok := fields[t.key]
		if !ok {
			return types.Event{}, fmt.Errorf("%w: %s", ErrMissingToken, t.key)
		}
		v, err := parseNumber(t.key, strings.TrimSuffix(raw, "%"))
		if err != nil {
			return types.Event{}, err
		}
		*t.dst = v
	}
	return ev, nil
}

func decodeJSON(p *fastjson.Parser, line string) (types.Event, error) {
	v, err := p.Parse(line)
	if err != nil {
		return types.Event{}, fmt.Errorf("%w: %v", ErrMissingToken, err)
	}

	ev := types.Event{Scenario: string(v.GetStringBytes("scenario"))}
	if ev.Scenario == "" {
		return types.Event{}, fmt.Errorf("%w: scenario", ErrMissingToken)
	}

	successKey := "success"
	if v.Exists("success_rate") {
		successKey = "success_rate"
	}
	targets := []struct {
		key string
		dst *float64
	}{
		{"throughput", &ev.Throughput},
		{"snr", &ev.SNR},
		{"datarate", &ev.DataRate},
		{successKey, &ev.SuccessRate},
	}
	for _, t := range targets {
		fv := v.Get(t.key)
		if fv == nil {
			return types.Event{}, fmt.Errorf("%w: %s", ErrMissingToken, t.key)
		}
		f, err := fv.Float64()
		if err != nil {
			return types.Event{}, fmt.Errorf("%s: %w: %s", t.key, ErrNumericConversion, fv.String())
		}
		*t.dst = f
	}
	return ev, nil
}

func parseNumber(field, tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %q", field, ErrNumericConversion, tok)
	}
	return v, nil
}
