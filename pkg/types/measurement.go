package types

// Event is a single measurement parsed from one simulation log line
type Event struct {
	Scenario    string  `json:"scenario" yaml:"scenario"`
	Throughput  float64 `json:"throughput" yaml:"throughput"`     // Mbps
	SNR         float64 `json:"snr" yaml:"snr"`                   // dB
	DataRate    float64 `json:"datarate" yaml:"datarate"`         // Mbps
	SuccessRate float64 `json:"success_rate" yaml:"success_rate"` // percent
}

// Summary holds the per-scenario means of every measured field
type Summary struct {
	Scenario       string  `yaml:"scenario"`
	Count          int     `yaml:"count"`
	Throughput     float64 `yaml:"throughput_mbps"`
	SNR            float64 `yaml:"snr_db"`
	DataRate       float64 `yaml:"datarate_mbps"`
	SuccessRate    float64 `yaml:"success_rate_pct"`
	ThroughputStdD float64 `yaml:"throughput_stddev"`
}
