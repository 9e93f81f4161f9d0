// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

// Reporter receives events synchronously, in the order they happen.
type Reporter interface {
	Report(event Event)
}

type ReporterFunc func(event Event)

func (f ReporterFunc) Report(event Event) {
	f(event)
}

// LogReporter writes each event as one log line.
type LogReporter struct {
	logger Logger
}

func (r *LogReporter) Report(event Event) {
	_ = r.logger.Log(event.Message(), event.Fields())
}

func NewLogReporter(logger Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func report(reporter Reporter, event Event) {
	if reporter != nil {
		reporter.Report(event)
	}
}
