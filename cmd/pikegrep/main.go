// Command pikegrep prints lines that match a pattern.
//
// Usage:
//
//	pikegrep [flags] PATTERN [FILE...]
//
// With no FILE, standard input is read. The exit status is 0 if a line
// matched, 1 if none did and 2 on error.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/coregx/pikevm"
)

const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := loadOptions(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitMatch
		}
		fmt.Fprintf(stderr, "pikegrep: %v\n", err)
		return exitError
	}

	logger, closeLog, err := newLogger(opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "pikegrep: %v\n", err)
		return exitError
	}
	defer closeLog()

	undo, err := maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf))
	if err != nil {
		logger.Warn("failed to set GOMAXPROCS", zap.Error(err))
	}
	defer undo()

	code, err := grepMain(opts, logger, stdin, stdout)
	if err != nil {
		logger.Debug("pikegrep failed", zap.Error(err))
		fmt.Fprintf(stderr, "pikegrep: %v\n", err)
		return exitError
	}
	return code
}

func grepMain(opts *options, logger *zap.Logger, stdin io.Reader, stdout io.Writer) (int, error) {
	config := pikevm.DefaultConfig()
	config.Greedy = !opts.Lazy
	config.EnablePrefilter = opts.Prefilter
	config.Logger = logger

	re, err := pikevm.CompileWithConfig(opts.Pattern, config)
	if err != nil {
		return exitError, errors.Wrapf(err, "compile %q", opts.Pattern)
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	if opts.DumpAST || opts.DumpProgram {
		if opts.DumpAST {
			fmt.Fprint(out, re.AST().String())
		}
		if opts.DumpProgram {
			fmt.Fprint(out, re.Program().String())
		}
		return exitMatch, nil
	}

	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g := &grep{re: re, greedy: config.Greedy, opts: opts, workers: workers}

	total := 0
	if len(opts.Files) == 0 {
		n, err := g.scan(stdin, "", out)
		if err != nil {
			return exitError, errors.Wrap(err, "stdin")
		}
		total += n
	}
	for _, name := range opts.Files {
		prefix := ""
		if len(opts.Files) > 1 {
			prefix = name + ":"
		}
		n, err := scanFile(g, name, prefix, out)
		if err != nil {
			return exitError, err
		}
		total += n
	}

	stats := re.Stats()
	logger.Debug("search finished",
		zap.Int("matched_lines", total),
		zap.Int("workers", workers),
		zap.Uint64("searches", stats.Searches),
		zap.Uint64("literal_searches", stats.LiteralSearches),
		zap.Uint64("prefilter_candidates", stats.PrefilterCandidates),
		zap.Uint64("prefilter_misses", stats.PrefilterMisses),
	)

	if total == 0 {
		return exitNoMatch, nil
	}
	return exitMatch, nil
}

func scanFile(g *grep, name, prefix string, w io.Writer) (int, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, errors.Wrapf(err, "open %s", name)
	}
	defer f.Close()

	n, err := g.scan(f, prefix, w)
	if err != nil {
		return n, errors.Wrapf(err, "%s", name)
	}
	return n, nil
}
