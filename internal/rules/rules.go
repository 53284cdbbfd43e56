// Package rules declares the built-in compile and link rule templates the
// graph assembler binds to a target's tools.
package rules

// Rule is a named compilation or link template. Command is the tail of the
// command line after the tool's own invocation; it contains exactly one
// $flags substitution point, which the assembler replaces with the
// per-tool flags variable. Patterns list the source filename globs the
// rule consumes; rules without patterns only appear as terminal edges.
type Rule struct {
	Command string
	// Args are the rule's default flags, concatenated before any
	// target-specific tool overrides.
	Args []string
	// Patterns bucket sources by filename; empty for link-only rules.
	Patterns []string
	// Depfile, when set, is the path template of the generated header
	// dependency file the executor tracks.
	Depfile string
}

// Builtin maps tool names to their rule templates.
var Builtin = map[string]Rule{
	"cc": {
		Command:  "-c -o $out $in -MD -MF $out.d $flags $cincs $cdefs",
		Args:     []string{"-std=gnu2x"},
		Patterns: []string{"*.c"},
		Depfile:  "$out.d",
	},
	"cxx": {
		Command:  "-c -o $out $in -MD -MF $out.d $flags $cincs $cdefs",
		Args:     []string{"-std=gnu++2b", "-fno-exceptions", "-fno-rtti"},
		Patterns: []string{"*.cpp", "*.cc", "*.cxx"},
		Depfile:  "$out.d",
	},
	"as": {
		Command:  "-c -o $out $in $flags",
		Patterns: []string{"*.s", "*.asm", "*.S"},
	},
	"ar": {
		Command: "$flags $out $in",
		Args:    []string{"rcs"},
	},
	"ld": {
		Command: "-o $out $flags $in",
	},
}

// CompileOrder lists the source-consuming rules in the order their edges
// are emitted for a component.
var CompileOrder = []string{"cc", "cxx", "as"}
