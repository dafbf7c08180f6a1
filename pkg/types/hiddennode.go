package types

// HiddenNodeRow is one line of a hidden-node run CSV
type HiddenNodeRow struct {
	Run           int
	Time          float64
	Scenario      string
	Tx1Throughput float64 // Node A
	Tx2Throughput float64 // Node C
}

// HiddenNodePoint is the averaged throughput of both transmitters at one
// (Time, Scenario) pair
type HiddenNodePoint struct {
	Time          float64
	Scenario      string
	Tx1Throughput float64
	Tx2Throughput float64
	Runs          int
}
