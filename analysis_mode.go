package wavescout

// AnalysisSamplingMode selects how sample times are generated for signal
// statistics: on a fixed period, or at transitions of a reference signal.
type AnalysisSamplingMode int

const (
	AnalysisPeriod AnalysisSamplingMode = iota
	AnalysisSignalEdges
)

// AnalysisConfig configures the statistics window implemented by
// wavescout/analysis: a time range plus a sampling mode for choosing the
// instants within it to evaluate.
type AnalysisConfig struct {
	Mode AnalysisSamplingMode

	// Period is used when Mode == AnalysisPeriod.
	Period Time

	// SamplingSignal is used when Mode == AnalysisSignalEdges: for single-bit
	// signals only rising edges are sampled, for buses/events every
	// transition is sampled.
	SamplingSignal SignalHandle

	StartTime Time
	EndTime   Time
}
