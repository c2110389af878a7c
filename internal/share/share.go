// Package share delivers converted documents to a destination after a batch completes.
//
// A Sharer is a completion consumer: callers run it with the output paths of
// a finished batch. Every path is attempted; failures are collected in the
// Report and summarized in the returned error.
package share

import (
	"context"
	"errors"
	"fmt"
)

// ErrShare is wrapped by every error returned from Share.
var ErrShare = errors.New("share failed")

// Sharer delivers documents to one destination.
type Sharer interface {
	Share(ctx context.Context, paths []string) (*Report, error)
}

// Delivery is the result of sharing one document to one target.
type Delivery struct {
	Target      string // sharer description, e.g. "dir:/synced" or "sftp:nas:22"
	Source      string
	Destination string // empty on failure
	Err         error
}

// Report holds one Delivery per (target, path) pair, in call order.
type Report struct {
	Deliveries []Delivery
}

// Delivered returns the successful deliveries.
func (r *Report) Delivered() []Delivery {
	var ok []Delivery
	for _, d := range r.Deliveries {
		if d.Err == nil {
			ok = append(ok, d)
		}
	}
	return ok
}

// Failed returns the failed deliveries.
func (r *Report) Failed() []Delivery {
	var failed []Delivery
	for _, d := range r.Deliveries {
		if d.Err != nil {
			failed = append(failed, d)
		}
	}
	return failed
}

// err summarizes failed deliveries, or returns nil.
func (r *Report) err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(failed))
	for _, d := range failed {
		errs = append(errs, fmt.Errorf("%s: %s: %w", d.Target, d.Source, d.Err))
	}
	return fmt.Errorf("%w: %d of %d deliveries: %w", ErrShare, len(failed), len(r.Deliveries), errors.Join(errs...))
}

// MultiSharer runs sharers in sequence and merges their reports.
// A failing sharer does not stop the next one.
type MultiSharer []Sharer

// Share runs every sharer with the same paths.
func (m MultiSharer) Share(ctx context.Context, paths []string) (*Report, error) {
	merged := &Report{}
	var setupErrs []error

	for _, s := range m {
		if err := ctx.Err(); err != nil {
			return merged, fmt.Errorf("%w: %w", ErrShare, err)
		}
		report, err := s.Share(ctx, paths)
		if report != nil {
			merged.Deliveries = append(merged.Deliveries, report.Deliveries...)
		}
		// Errors not reflected in the report (dial, auth) are kept separately
		if err != nil && (report == nil || len(report.Failed()) == 0) {
			setupErrs = append(setupErrs, err)
		}
	}

	if err := merged.err(); err != nil {
		return merged, errors.Join(append([]error{err}, setupErrs...)...)
	}
	if len(setupErrs) > 0 {
		return merged, errors.Join(setupErrs...)
	}
	return merged, nil
}
