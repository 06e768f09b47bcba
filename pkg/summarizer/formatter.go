package summarizer

// Formatter renders an export summary, e.g. as the Markdown report written
// by `cropaway export --summary`.
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc lets a plain function render summaries.
type FormatFunc func(summary *Summary) string

// Format calls f.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}
