package inheritance

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/inodb/inhmode/internal/record"
)

// Classifier classifies record streams with a pool of workers.
type Classifier struct {
	workers int
	logger  *zap.Logger
}

// NewClassifier creates a classifier using runtime.NumCPU() workers.
func NewClassifier() *Classifier {
	return &Classifier{logger: zap.NewNop()}
}

// SetLogger sets the logger for warning and info messages.
func (c *Classifier) SetLogger(l *zap.Logger) {
	c.logger = l
}

// SetWorkers sets the worker count. Zero or less means runtime.NumCPU().
func (c *Classifier) SetWorkers(n int) {
	c.workers = n
}

// WorkItem holds a parsed record ready for classification.
type WorkItem struct {
	Seq    int
	Record *record.Record
}

// WorkResult holds the classification of a single record.
type WorkResult struct {
	Seq    int
	Record *record.Record
	Result *Result
	Err    error
}

// ParallelClassify classifies work items using a pool of workers.
// Results are sent to the returned channel in arrival order (not sequence order).
// Use OrderedCollect to consume results in sequence-number order.
// If workers is 0, runtime.NumCPU() is used.
func (c *Classifier) ParallelClassify(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				res, err := Classify(item.Record)
				results <- WorkResult{
					Seq:    item.Seq,
					Record: item.Record,
					Result: res,
					Err:    err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// It buffers out-of-order results in a pending map and emits them
// as soon as the next expected sequence number is available.
// Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}

// BatchStats summarizes a ClassifyAll run.
type BatchStats struct {
	Records    int
	Classified int
	Failed     int
	Modes      map[Mode]int
}

// ClassifyAll classifies every record from parser and writes results in
// input order. Records that fail validation or hit an invalid state are
// logged and skipped. The writer's header is not written.
func (c *Classifier) ClassifyAll(parser record.RecordParser, w ResultWriter) (BatchStats, error) {
	workers := c.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	items := make(chan WorkItem, 2*workers)
	var parseErr error
	stats := BatchStats{Modes: make(map[Mode]int)}

	go func() {
		defer close(items)
		seq := 0
		for {
			rec, err := parser.Next()
			if err != nil {
				parseErr = fmt.Errorf("read record: %w", err)
				return
			}
			if rec == nil {
				return
			}
			items <- WorkItem{Seq: seq, Record: rec}
			seq++
		}
	}()

	results := c.ParallelClassify(items, workers)

	if err := OrderedCollect(results, func(r WorkResult) error {
		stats.Records++
		if r.Err != nil {
			stats.Failed++
			c.logger.Warn("failed to classify record",
				zap.Int("record", r.Seq+1),
				zap.String("variant", r.Record.Title()),
				zap.Error(r.Err))
			return nil
		}
		stats.Classified++
		for _, m := range r.Result.InheritanceModes {
			stats.Modes[m]++
		}
		if err := w.Write(r.Record, r.Result); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		return nil
	}); err != nil {
		return stats, err
	}

	if parseErr != nil {
		return stats, parseErr
	}

	if stats.Records == 0 {
		c.logger.Info("0 records processed")
	}

	return stats, w.Flush()
}

// ResultWriter defines the interface for writing classification results.
type ResultWriter interface {
	WriteHeader() error
	Write(rec *record.Record, res *Result) error
	Flush() error
}
