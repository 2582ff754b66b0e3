// Command oocheck type-checks a serialized AST + class-context fixture
// against the constraint-based checker in the checker package. It plays
// the role the teacher's cmd/dwscript CLI plays for the compiler: a thin
// cobra shell around the library, with no checking logic of its own.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags, mirroring cmd/dwscript's pattern.
	Version = "0.1.0-dev"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "oocheck",
	Short: "Constraint-based type checker for OO fixture ASTs",
	Long: `oocheck runs the constraint-generation and unification passes over
a serialized AST and class-context fixture, reporting the errors the
checker produces (or none, if the fixture type-checks).

It does not lex or parse source text itself: fixtures are JSON
documents describing an AST and the classes/functions it can reference,
the same shape Generate/Unify consume internally.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
