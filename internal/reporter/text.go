// Package reporter provides output formatters for validation results.
//
// The text formatter groups issues by severity and renders a summary table,
// with Lip Gloss styling and Chroma syntax highlighting for source snippets.
package reporter

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/yamlvet/yamlvet/internal/aggregate"
	"github.com/yamlvet/yamlvet/internal/issue"
)

// Styles for different parts of the output
var (
	// Color detection using termenv (respects NO_COLOR, CLICOLOR_FORCE, terminal detection)
	useColors = termenv.EnvColorProfile() != termenv.Ascii

	// Section header style
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")) // White

	// File location style
	fileLocStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")) // Light gray

	// Line number style
	lineNumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Dark gray

	// Separator style
	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")) // Darker gray

	// Marker style for affected lines
	markerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")) // Red

	// Severity styles
	severityStyles = map[issue.Severity]lipgloss.Style{
		issue.SeverityCritical: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Bright red
		issue.SeverityHigh: lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")), // Red
		issue.SeverityMedium: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")), // Orange/Yellow
		issue.SeverityLow: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")), // Cyan/Blue
		issue.SeverityInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")), // Green
	}
)

// TextOptions configures the text reporter output.
type TextOptions struct {
	// Color enables/disables colored output. Default: auto-detect.
	Color *bool

	// SyntaxHighlight enables YAML syntax highlighting in snippets.
	SyntaxHighlight bool

	// ShowSource shows source line snippets for localized issues.
	ShowSource bool

	// ChromaStyle is the Chroma style name for syntax highlighting.
	// Default: "monokai" for dark terminals, "github" for light.
	ChromaStyle string
}

// DefaultTextOptions returns sensible defaults for text output.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Color:           nil, // auto-detect
		SyntaxHighlight: true,
		ShowSource:      true,
		ChromaStyle:     "", // auto-detect
	}
}

// TextReporter formats a validation result as styled text output.
type TextReporter struct {
	opts      TextOptions
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

// NewTextReporter creates a new text reporter with the given options.
func NewTextReporter(opts TextOptions) *TextReporter {
	r := &TextReporter{opts: opts}

	colorEnabled := useColors
	if opts.Color != nil {
		colorEnabled = *opts.Color
	}

	if colorEnabled && opts.SyntaxHighlight {
		r.lexer = lexers.Get("yaml")
		if r.lexer == nil {
			r.lexer = lexers.Fallback
		}
		r.lexer = chroma.Coalesce(r.lexer)

		styleName := opts.ChromaStyle
		if styleName == "" {
			if lipgloss.HasDarkBackground() {
				styleName = "monokai"
			} else {
				styleName = "github"
			}
		}
		r.style = styles.Get(styleName)
		if r.style == nil {
			r.style = styles.Fallback
		}

		r.formatter = formatters.Get("terminal256")
		if r.formatter == nil {
			r.formatter = formatters.Fallback
		}
	}

	return r
}

// Print writes the grouped issue list followed by the summary table.
func (r *TextReporter) Print(w io.Writer, result aggregate.Result, source []byte) error {
	if err := r.printIssues(w, result, source); err != nil {
		return err
	}
	return r.printSummary(w, result.Summary)
}

// printIssues partitions issues by severity and visits severities from most
// to least severe, preserving insertion order within each group. Severities
// with no issues are skipped entirely.
func (r *TextReporter) printIssues(w io.Writer, result aggregate.Result, source []byte) error {
	if len(result.Issues) == 0 {
		return nil
	}

	colorEnabled := r.colorEnabled()
	groups := aggregate.GroupBySeverity(result.Issues)

	if _, err := fmt.Fprintln(w, r.styled(headerStyle, "Issues found:", colorEnabled)); err != nil {
		return err
	}

	for _, sev := range issue.Severities() {
		grouped, ok := groups[sev]
		if !ok {
			continue
		}

		sevStyle := severityStyles[sev]
		if _, err := fmt.Fprintf(w, "\n%s\n", r.styled(sevStyle.Bold(true), sev.Label()+":", colorEnabled)); err != nil {
			return err
		}

		for _, iss := range grouped {
			line := fmt.Sprintf("  • [%s]%s %s%s", iss.Tool, ruleInfo(iss), iss.Message, location(iss))
			if _, err := fmt.Fprintln(w, r.styled(sevStyle, line, colorEnabled)); err != nil {
				return err
			}
			if r.opts.ShowSource && iss.HasLocation() && len(source) > 0 {
				r.printSource(w, result.FilePath, iss.Line, source, colorEnabled)
			}
		}
	}

	fmt.Fprintln(w)
	return nil
}

// printSummary renders the per-severity summary table and the total row.
func (r *TextReporter) printSummary(w io.Writer, summary aggregate.Summary) error {
	colorEnabled := r.colorEnabled()

	if _, err := fmt.Fprintln(w, r.styled(headerStyle, "Summary:", colorEnabled)); err != nil {
		return err
	}
	fmt.Fprintf(w, "%-12s %-8s %s\n", "Severity", "Count", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 40))

	for _, sev := range issue.Severities() {
		count := summary.Count(sev)
		status := "clean"
		if count > 0 {
			status = "issues found"
		}
		row := fmt.Sprintf("%-12s %-8d %s", sev.Label(), count, status)
		if _, err := fmt.Fprintln(w, r.styled(severityStyles[sev], row, colorEnabled)); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, strings.Repeat("-", 40))

	totalStatus := "all clean"
	totalStyle := severityStyles[issue.SeverityInfo]
	if summary.Total > 0 {
		totalStatus = "issues found"
		totalStyle = severityStyles[issue.SeverityCritical]
	}
	totalRow := fmt.Sprintf("%-12s %-8d %s", "TOTAL", summary.Total, totalStatus)
	_, err := fmt.Fprintln(w, r.styled(totalStyle.Bold(true), totalRow, colorEnabled))
	return err
}

// printSource renders the affected source line with two lines of context.
func (r *TextReporter) printSource(w io.Writer, file string, affected int, source []byte, colorEnabled bool) {
	lines := strings.Split(string(source), "\n")
	if affected < 1 || affected > len(lines) {
		return
	}

	start := max(affected-2, 1)
	end := min(affected+2, len(lines))

	if colorEnabled {
		fmt.Fprintln(w, "    "+fileLocStyle.Render(fmt.Sprintf("%s:%d", file, affected)))
	} else {
		fmt.Fprintf(w, "    %s:%d\n", file, affected)
	}

	for i := start; i <= end; i++ {
		lineContent := strings.TrimSuffix(lines[i-1], "\r") // Trim CRLF to avoid artifacts

		var lineNum string
		if colorEnabled {
			lineNum = lineNumStyle.Render(fmt.Sprintf(" %3d │", i))
		} else {
			lineNum = fmt.Sprintf(" %3d |", i)
		}

		marker := "   "
		if i == affected {
			if colorEnabled {
				marker = markerStyle.Render(">>>")
			} else {
				marker = ">>>"
			}
		}

		content := lineContent
		if colorEnabled && r.lexer != nil && r.style != nil && r.formatter != nil {
			content = r.highlightLine(lineContent)
		}

		fmt.Fprintf(w, "   %s %s %s\n", lineNum, marker, content)
	}

	if colorEnabled {
		fmt.Fprintln(w, "    "+separatorStyle.Render("────────────────────"))
	} else {
		fmt.Fprintln(w, "    --------------------")
	}
}

// highlightLine applies syntax highlighting to a single line.
func (r *TextReporter) highlightLine(line string) string {
	iterator, err := r.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf bytes.Buffer
	err = r.formatter.Format(&buf, r.style, iterator)
	if err != nil {
		return line
	}

	// Trim trailing newline that formatter might add
	return strings.TrimSuffix(buf.String(), "\n")
}

func (r *TextReporter) colorEnabled() bool {
	if r.opts.Color != nil {
		return *r.opts.Color
	}
	return useColors
}

func (r *TextReporter) styled(style lipgloss.Style, s string, colorEnabled bool) string {
	if !colorEnabled {
		return s
	}
	return style.Render(s)
}

// ruleInfo renders the optional rule identifier: " [rule]" or "".
func ruleInfo(iss issue.Issue) string {
	if iss.Rule == "" {
		return ""
	}
	return " [" + iss.Rule + "]"
}

// location renders the optional position: "(Line L, Col C)", "(Line L)" when
// the column is absent, or "" when the issue is not localized.
func location(iss issue.Issue) string {
	if !iss.HasLocation() {
		return ""
	}
	if iss.Column > 0 {
		return fmt.Sprintf(" (Line %d, Col %d)", iss.Line, iss.Column)
	}
	return fmt.Sprintf(" (Line %d)", iss.Line)
}

// PrintTextPlain writes a result without any styling (for non-TTY output).
func PrintTextPlain(w io.Writer, result aggregate.Result, source []byte) error {
	noColor := false
	opts := TextOptions{
		Color:           &noColor,
		SyntaxHighlight: false,
		ShowSource:      true,
	}
	r := NewTextReporter(opts)
	return r.Print(w, result, source)
}
