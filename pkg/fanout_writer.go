package pkg

import (
	"io"
	"sync"

	"go.uber.org/multierr"
)

// FanoutWriter copies every write to all of its sinks. A write succeeds as
// long as one sink accepted it; failed sinks are remembered in Err.
type FanoutWriter struct {
	sinks []io.Writer

	mu  sync.Mutex
	err error
}

func NewFanoutWriter(sinks ...io.Writer) *FanoutWriter {
	return &FanoutWriter{
		sinks: sinks,
	}
}

func (fw *FanoutWriter) Write(p []byte) (int, error) {
	var (
		delivered bool
		errs      error
	)
	for _, sink := range fw.sinks {
		if _, err := sink.Write(p); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		delivered = true
	}

	if errs != nil {
		fw.mu.Lock()
		fw.err = multierr.Append(fw.err, errs)
		fw.mu.Unlock()
	}

	if !delivered && len(fw.sinks) > 0 {
		return 0, errs
	}
	return len(p), nil
}

// Err returns every sink error seen so far.
func (fw *FanoutWriter) Err() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.err
}
