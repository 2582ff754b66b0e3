package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/oocheck/oocheck/checker"
	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/rescache"
)

var (
	configPath string
	cacheDSN   string
)

var checkCmd = &cobra.Command{
	Use:   "check <fixture.json | glob>",
	Short: "Type-check one or more AST fixtures",
	Long: `check reads one or more JSON fixtures (an AST plus the classes and
functions it can reference) and runs Generate + Unify over each, printing
any errors found.

A single path is checked as-is. A path containing a glob pattern (e.g.
testdata/**/*.json) is expanded with doublestar and every match is
checked in turn; type errors in one fixture do not stop the others, but a
fixture that cannot be read, decoded or looked up in the cache ends the
run with an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&configPath, "config", ".oocheck.yaml", "path to an optional config file")
	checkCmd.Flags().StringVar(&cacheDSN, "cache", "", "sqlite DSN for the result cache (disabled when empty)")
}

func runCheck(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "config: reinsertLimit=%d strictRaises=%v\n", cfg.ReinsertLimit, cfg.StrictRaises)
	}

	paths, err := expandPaths(args[0])
	if err != nil {
		return err
	}

	var cache *rescache.Cache
	if cacheDSN != "" {
		cache, err = rescache.Open(cacheDSN)
		if err != nil {
			return fmt.Errorf("opening result cache: %w", err)
		}
	}

	failed := false
	for _, path := range paths {
		ok, err := checkOne(path, cfg, cache)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !ok {
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("type checking failed")
	}
	return nil
}

// expandPaths returns pattern itself when it names a plain file, or its
// doublestar expansion otherwise (morfx's glob-then-walk pattern).
func expandPaths(pattern string) ([]string, error) {
	if !containsGlobMeta(pattern) {
		return []string{pattern}, nil
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files matched %q", pattern)
	}
	return matches, nil
}

func containsGlobMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// checkOne checks a single fixture file and reports its outcome, using
// the result cache when enabled. It returns false when the fixture has
// any errors (after applying the strict-raises policy).
func checkOne(path string, cfg config, cache *rescache.Cache) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	digest := digestOf(raw)

	if cache != nil {
		stored, hit, err := cache.Lookup(digest)
		if err != nil {
			return false, err
		}
		if hit {
			if verbose {
				fmt.Fprintf(os.Stderr, "%s: cache hit (digest %s)\n", path, digest[:12])
			}
			return reportStored(path, stored, cfg), nil
		}
	}

	var fx fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		return false, fmt.Errorf("decoding fixture: %w", err)
	}
	file, err := decodeFile(fx.File)
	if err != nil {
		return false, err
	}
	ctx := fx.buildContext()

	result := checker.Check(file, ctx)

	if cache != nil {
		runID := ""
		if len(result.Errs) > 0 {
			runID = result.Errs[0].RunID
		}
		if err := cache.Store(digest, runID, result.Errs); err != nil {
			return false, fmt.Errorf("storing result: %w", err)
		}
	}

	return report(path, result.Errs, cfg), nil
}

func digestOf(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// report prints result.Errs and decides pass/fail under cfg.StrictRaises:
// when false, UncoveredRaises errors are printed as warnings rather than
// failures.
func report(path string, errs checkerr.List, cfg config) bool {
	ok := true
	for _, e := range errs {
		if e.Kind == checkerr.UncoveredRaises && !cfg.StrictRaises {
			fmt.Printf("%s: warning: %s\n", path, e.Format(false))
			continue
		}
		fmt.Printf("%s: %s\n", path, e.Format(false))
		ok = false
	}
	if ok {
		fmt.Printf("%s: ok\n", path)
	}
	return ok
}

func reportStored(path string, stored []rescache.StoredError, cfg config) bool {
	ok := true
	for _, e := range stored {
		if e.Kind == checkerr.UncoveredRaises && !cfg.StrictRaises {
			fmt.Printf("%s: warning: %s at %s\n", path, e.Message, e.Pos)
			continue
		}
		fmt.Printf("%s: %s at %s\n", path, e.Message, e.Pos)
		ok = false
	}
	if ok {
		fmt.Printf("%s: ok (cached)\n", path)
	}
	return ok
}
