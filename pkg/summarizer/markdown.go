package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator translates headings and labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{translate: func(s string) string { return s }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Export Summary"))

	fmt.Fprintf(&b, "## %s\n\n", t("Source"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	row(&b, t("File"), s.Source.Path)
	row(&b, t("Duration"), formatSeconds(s.Source.Duration))
	row(&b, t("Resolution"), formatSize(s.Source.Width, s.Source.Height))
	if s.Source.Codec != "" {
		row(&b, t("Codec"), s.Source.Codec)
	}
	if s.Source.Bitrate > 0 {
		row(&b, t("Bitrate"), formatBitrate(s.Source.Bitrate))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Export"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	row(&b, t("Crop Mode"), s.Export.Mode)
	row(&b, t("Strategy"), s.Export.Strategy)
	row(&b, t("Keyframes"), fmt.Sprintf("%d", s.Export.Keyframes))
	encoder := s.Export.Encoder
	if s.Export.Hardware {
		encoder += " (" + t("hardware") + ")"
	}
	row(&b, t("Encoder"), encoder)
	if s.Export.Elapsed > 0 {
		row(&b, t("Elapsed"), s.Export.Elapsed.Round(time.Millisecond).String())
	}
	b.WriteString("\n")

	if len(s.Segments) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Segments"))
		fmt.Fprintf(&b, "| # | %s | %s |\n|---|---|---|\n", t("Start"), t("End"))
		for i, seg := range s.Segments {
			fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, formatSeconds(seg.Start), formatSeconds(seg.End))
		}
		b.WriteString("\n")
	}

	if s.Export.Filter != "" {
		fmt.Fprintf(&b, "## %s\n\n```\n%s\n```\n\n", t("Filter"), s.Export.Filter)
	}

	fmt.Fprintf(&b, "## %s\n\n", t("Output"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	row(&b, t("File"), s.Output.Path)
	if s.Output.Width > 0 {
		row(&b, t("Resolution"), formatSize(s.Output.Width, s.Output.Height))
	}
	row(&b, t("File Size"), formatBytes(s.Output.FileSize))
	b.WriteString("\n---\n\n")

	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format(time.RFC3339))
	if f.version != "" {
		footer += " · cropaway " + f.version
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", label, strings.ReplaceAll(value, "|", `\|`))
}

func formatSeconds(s float64) string {
	return fmt.Sprintf("%.3f s", s)
}

func formatSize(w, h int) string {
	if w <= 0 || h <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%dx%d", w, h)
}

func formatBitrate(bps int64) string {
	if bps >= 1_000_000 {
		return fmt.Sprintf("%.2f Mbps", float64(bps)/1_000_000)
	}
	return fmt.Sprintf("%.0f kbps", float64(bps)/1000)
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < 2; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMG"[exp])
}
