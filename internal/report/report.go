package report

// Report counts records and forwards their rendered lines to a sink.
type Report struct {
	sink  Sink
	count int
	lines []string
}

// New creates a report writing to sink.
func New(sink Sink) *Report {
	return &Report{sink: sink}
}

// Add renders rec, counts it and writes it to the sink.
func (r *Report) Add(rec Record) error {
	line := rec.Render()
	if err := r.sink.WriteLine(line); err != nil {
		return err
	}
	r.count++
	r.lines = append(r.lines, line)
	return nil
}

// Count returns the number of records added.
func (r *Report) Count() int {
	return r.count
}

// Lines returns the rendered record lines in the order they were added.
func (r *Report) Lines() []string {
	return append([]string(nil), r.lines...)
}

// Finish writes the summary line and closes the sink.
func (r *Report) Finish() error {
	if err := r.sink.WriteLine(SummaryLine(r.count)); err != nil {
		return err
	}
	return r.sink.Close()
}
