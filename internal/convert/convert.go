package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/mgpai22/asslrc/internal/logging"
	"github.com/mgpai22/asslrc/internal/subtitle"
)

// per-file conversion outcome
type Outcome string

const (
	OutcomeConverted Outcome = "converted"
	OutcomeExists    Outcome = "exists"
	OutcomeNoEntries Outcome = "no_entries"
	OutcomeFailed    Outcome = "failed"
)

// result of converting one input file
type Result struct {
	Index      int
	InputPath  string
	OutputPath string
	Outcome    Outcome
	Entries    int
	SharedRuns int // same-time groups that were spread out
	Skipped    map[subtitle.SkipReason]int
	Err        error
}

// aggregate of a run over several files, results in input order
type Summary struct {
	Results []Result
}

// number of files the run was given
func (s Summary) Found() int {
	return len(s.Results)
}

// number of files that produced a new output
func (s Summary) Converted() int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == OutcomeConverted {
			n++
		}
	}
	return n
}

// results that should be reported to the user; existing outputs are
// left out so reruns stay quiet
func (s Summary) NotConverted() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Outcome != OutcomeConverted && r.Outcome != OutcomeExists {
			out = append(out, r)
		}
	}
	return out
}

// Script converts an ASS document held in memory into LRC text. ok is
// false when the document has no usable Dialogue lines.
func Script(doc string) (string, subtitle.Extraction, bool) {
	ext := subtitle.Extract(doc)
	if len(ext.Entries) == 0 {
		return "", ext, false
	}

	entries := append([]subtitle.Entry(nil), ext.Entries...)
	subtitle.SortEntries(entries)
	entries = subtitle.Redistribute(entries)

	return subtitle.RenderLRC(entries), ext, true
}

// counts groups of more than one entry sharing a start time
func sharedRuns(entries []subtitle.Entry) int {
	sorted := append([]subtitle.Entry(nil), entries...)
	subtitle.SortEntries(sorted)

	n := 0
	for _, size := range subtitle.Runs(sorted) {
		if size > 1 {
			n++
		}
	}
	return n
}

// Converter turns ASS files into LRC files.
type Converter struct {
	OutputDir   string // empty writes next to each input
	Extension   string
	Concurrency int
	logger      *logging.Logger
}

func NewConverter(outputDir, extension string, concurrency int, logger *logging.Logger) *Converter {
	if extension == "" {
		extension = subtitle.GetExtensionForFormat(subtitle.FormatLRC)
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Converter{
		OutputDir:   outputDir,
		Extension:   extension,
		Concurrency: concurrency,
		logger:      logger,
	}
}

// ConvertFile converts a single file. Problems are reported through the
// result's Outcome and Err, never as a panic.
func (c *Converter) ConvertFile(ctx context.Context, path string) Result {
	result := Result{
		InputPath:  path,
		OutputPath: subtitle.OutputPath(path, c.OutputDir, c.Extension),
	}
	log := c.logger.With("file", filepath.Base(path))

	if err := ctx.Err(); err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Errorw("Failed to read input", "error", err)
		result.Outcome = OutcomeFailed
		result.Err = fmt.Errorf("failed to read %s: %w", path, err)
		return result
	}

	content, ext, ok := Script(subtitle.DecodeScript(raw))
	result.Entries = len(ext.Entries)
	result.Skipped = ext.SkipCounts()

	for _, s := range ext.Skipped {
		log.Debugw("Skipped dialogue line", "line", s.Line, "reason", s.Reason)
	}

	if !ok {
		log.Warnw("No usable dialogue lines", "skipped", len(ext.Skipped))
		result.Outcome = OutcomeNoEntries
		return result
	}

	if err := subtitle.WriteLRC(result.OutputPath, content); err != nil {
		if errors.Is(err, subtitle.ErrOutputExists) {
			log.Debugw("Output already exists", "output", result.OutputPath)
			result.Outcome = OutcomeExists
			return result
		}
		log.Errorw("Failed to write output", "output", result.OutputPath, "error", err)
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}

	result.SharedRuns = sharedRuns(ext.Entries)
	log.Debugw("Converted",
		"output", result.OutputPath,
		"entries", result.Entries,
		"redistributed_runs", result.SharedRuns,
		"skipped", len(ext.Skipped),
	)
	result.Outcome = OutcomeConverted
	return result
}

// Run converts the given files with up to Concurrency workers. One
// file's failure never stops the others.
func (c *Converter) Run(ctx context.Context, paths []string) Summary {
	if len(paths) == 0 {
		return Summary{}
	}

	concurrency := min(c.Concurrency, len(paths))

	type job struct {
		index int
		path  string
	}

	workChan := make(chan job, len(paths))
	resultChan := make(chan Result, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Go(func() {
			for j := range workChan {
				r := c.ConvertFile(ctx, j.path)
				r.Index = j.index
				resultChan <- r
			}
		})
	}

	for i, p := range paths {
		workChan <- job{index: i, path: p}
	}
	close(workChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]Result, 0, len(paths))
	for r := range resultChan {
		results = append(results, r)
	}

	// sort by index to maintain order
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	return Summary{Results: results}
}
