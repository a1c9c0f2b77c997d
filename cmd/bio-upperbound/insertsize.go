package main

import (
	"context"
	"fmt"

	"github.com/grailbio/upperbound/upperbound"
)

func insertSize(ctx context.Context, path string, minMapQ, sampleSize int) error {
	opts := upperbound.DefaultOpts
	opts.Mode = upperbound.MatePair
	opts.MinMapQ = minMapQ
	opts.InsertSampleSize = sampleSize
	ev, err := upperbound.ReadAlignments(ctx, path, upperbound.MatePairJoiner, &opts)
	if err != nil {
		return err
	}
	w, err := upperbound.EstimateInsertWindow(ev.InsertSample)
	if err != nil {
		return err
	}
	// The output is a valid -config parameter file.
	fmt.Printf("# read length %d, %d pair(s) sampled\ninsert_size_min: %d\ninsert_size_max: %d\n",
		ev.ReadLength, len(ev.InsertSample), w.Min, w.Max)
	return nil
}
