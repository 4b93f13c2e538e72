package recorder

// Evaluation holds one ticker's pipeline outcome for the history log.
type Evaluation struct {
	Ticker     string
	Price      float64
	Signal     string
	StopLoss   float64
	TotalScore float64
	Label      string
	PCRatio    float64 // 0 when no put/call data was attached
	PCSource   string  // "live", "snapshot", or ""
}

// ScanRun summarizes one pass over the ticker universe.
type ScanRun struct {
	Universe int
	Buy      int
	Hold     int
	Sell     int
	Failures int
}

// Recorder persists historical evaluations for diagnostics. Nothing in
// the pipeline reads this history back.
type Recorder interface {
	RecordEvaluation(ev *Evaluation) error
	RecordScan(run *ScanRun) error
	Close() error
}
