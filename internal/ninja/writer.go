// Package ninja writes the build-graph document in the ninja file grammar.
// The grammar is a hard external constraint: variables, rule declarations
// with optional depfiles, build edges with explicit, implicit ("|") and
// order-only ("||") inputs, phony edges, and a default goal must all come
// out exactly as the executor expects them.
package ninja

import (
	"fmt"
	"io"
	"strings"
)

// Writer emits one document to an underlying io.Writer. Write errors stick:
// the first one is kept and every later call becomes a no-op, so callers
// check Err once at the end.
type Writer struct {
	out io.Writer
	err error
}

// NewWriter returns a Writer emitting to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, args...)
}

// Comment writes a single comment line.
func (w *Writer) Comment(text string) {
	w.printf("# %s\n", text)
}

// Separator writes a titled section divider.
func (w *Writer) Separator(title string) {
	w.printf("\n# --- %s %s\n\n", title, strings.Repeat("-", max(0, 68-len(title))))
}

// Newline writes an empty line.
func (w *Writer) Newline() {
	w.printf("\n")
}

// Variable writes a global variable assignment.
func (w *Writer) Variable(name, value string) {
	w.printf("%s = %s\n", name, value)
}

// Rule declares a rule. An empty depfile omits the depfile binding.
func (w *Writer) Rule(name, command, depfile string) {
	w.printf("rule %s\n", name)
	w.printf("  command = %s\n", command)
	if depfile != "" {
		w.printf("  depfile = %s\n", depfile)
	}
}

// Edge is one build statement.
type Edge struct {
	Outputs   []string
	Rule      string
	Inputs    []string
	Implicit  []string
	OrderOnly []string
}

// Build writes a build edge.
func (w *Writer) Build(e Edge) {
	w.printf("build %s: %s", joinPaths(e.Outputs), e.Rule)
	if len(e.Inputs) > 0 {
		w.printf(" %s", joinPaths(e.Inputs))
	}
	if len(e.Implicit) > 0 {
		w.printf(" | %s", joinPaths(e.Implicit))
	}
	if len(e.OrderOnly) > 0 {
		w.printf(" || %s", joinPaths(e.OrderOnly))
	}
	w.printf("\n")
}

// Default declares the default goals.
func (w *Writer) Default(goals ...string) {
	w.printf("default %s\n", joinPaths(goals))
}

// pathEscaper handles the characters ninja treats specially inside paths.
var pathEscaper = strings.NewReplacer("$", "$$", " ", "$ ", ":", "$:")

// EscapePath escapes one path for use in a build statement.
func EscapePath(path string) string {
	return pathEscaper.Replace(path)
}

func joinPaths(paths []string) string {
	escaped := make([]string, len(paths))
	for i, p := range paths {
		escaped[i] = EscapePath(p)
	}
	return strings.Join(escaped, " ")
}
