package ingest

import (
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Ingest processes files on a fixed-size worker pool and returns one record per distinct
// path. Records are collected in completion order; a failing file still yields a record.
func Ingest(files []string, opts Options) map[string]FileRecord {
	logger := opts.logger()
	records := make(map[string]FileRecord, len(files))
	if len(files) == 0 {
		return records
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", workers))
	}
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan string, len(files))
	results := make(chan FileRecord, len(files))
	var wg sync.WaitGroup

	logger.Debug("Initializing worker pool", zap.Int("workers", workers))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go worker(w, jobs, results, &wg, opts)
	}

	for _, file := range files {
		jobs <- file
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for record := range results {
		records[record.Path] = record
		if opts.OnProgress != nil {
			opts.OnProgress(record.Path)
		}
	}

	logger.Debug("All files processed", zap.Int("processedFiles", len(records)))
	return records
}

// worker processes paths from jobs until the channel is closed.
func worker(id int, jobs <-chan string, results chan<- FileRecord, wg *sync.WaitGroup, opts Options) {
	defer wg.Done()
	opts.Logger = opts.logger().With(zap.Int("workerID", id))

	for path := range jobs {
		results <- ProcessFile(path, opts)
	}
}
