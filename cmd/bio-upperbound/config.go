package main

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/upperbound/upperbound"
	"gopkg.in/yaml.v3"
)

// loadConfig overlays the YAML parameter file at path onto opts.  Keys not in
// the file keep their current values; unknown keys are an error.
func loadConfig(ctx context.Context, path string, opts *upperbound.Opts) (err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, in, &err)
	dec := yaml.NewDecoder(in.Reader(ctx))
	dec.KnownFields(true)
	if err = dec.Decode(opts); err == io.EOF {
		err = nil
	}
	if err != nil {
		err = fmt.Errorf("%s: %v", path, err)
	}
	return
}
