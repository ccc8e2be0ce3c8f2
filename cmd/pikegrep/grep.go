package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/coregx/pikevm"
)

// batchSize is the number of lines searched concurrently before their
// results are written out in input order.
const batchSize = 4096

// maxLineLen bounds a single input line.
const maxLineLen = 1 << 20

// grep searches inputs line by line with one shared Regex.
type grep struct {
	re      *pikevm.Regex
	greedy  bool
	opts    *options
	workers int
}

// lineResult is what a line contributes to the output.
type lineResult struct {
	matched bool
	out     []string
}

// scan searches every line of r and writes the results to w. prefix is put
// in front of every output line. It returns the number of matching lines.
func (g *grep) scan(r io.Reader, prefix string, w io.Writer) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)

	matched := 0
	batch := make([]string, 0, batchSize)
	flush := func() error {
		for _, res := range g.searchBatch(batch) {
			if !res.matched {
				continue
			}
			matched++
			if g.opts.Count {
				continue
			}
			for _, line := range res.out {
				if _, err := fmt.Fprintf(w, "%s%s\n", prefix, line); err != nil {
					return errors.Wrap(err, "write output")
				}
			}
		}
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		batch = append(batch, scanner.Text())
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return matched, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return matched, errors.Wrap(err, "read input")
	}
	if err := flush(); err != nil {
		return matched, err
	}

	if g.opts.Count {
		if _, err := fmt.Fprintf(w, "%s%d\n", prefix, matched); err != nil {
			return matched, errors.Wrap(err, "write output")
		}
	}
	return matched, nil
}

// searchBatch searches lines on g.workers goroutines. Results are indexed by
// line, so the output order does not depend on scheduling.
func (g *grep) searchBatch(lines []string) []lineResult {
	results := make([]lineResult, len(lines))
	if len(lines) == 0 {
		return results
	}

	workers := g.workers
	if workers > len(lines) {
		workers = len(lines)
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = g.searchLine(lines[idx])
			}
		}()
	}
	for idx := range lines {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()
	return results
}

func (g *grep) searchLine(line string) lineResult {
	m := g.re.Search(line, g.greedy)
	if !m.Matched {
		return lineResult{}
	}

	switch {
	case g.opts.Count:
		return lineResult{matched: true}

	case g.opts.OnlyMatching:
		var out []string
		for _, s := range g.re.FindAllString(line, -1) {
			if s != "" {
				out = append(out, s)
			}
		}
		return lineResult{matched: true, out: out}

	case g.opts.Captures:
		fields := make([]string, 1, 1+m.NumGroups())
		fields[0] = m.String()
		for k := 1; k <= m.NumGroups(); k++ {
			s, _ := m.Group(k)
			fields = append(fields, s)
		}
		return lineResult{matched: true, out: []string{strings.Join(fields, "\t")}}

	default:
		return lineResult{matched: true, out: []string{line}}
	}
}
