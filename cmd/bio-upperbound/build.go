package main

import (
	"context"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/upperbound/encoding/fasta"
	"github.com/grailbio/upperbound/upperbound"
)

func build(ctx context.Context, flags *inputFlags) (*upperbound.Result, error) {
	opts, err := flags.opts(ctx)
	if err != nil {
		return nil, err
	}
	in, err := flags.load(ctx, &opts)
	if err != nil {
		return nil, err
	}
	return upperbound.Build(in, opts)
}

// writeAssembly writes recs to <prefix>.fa, and their index to
// <prefix>.fa.fai.
func writeAssembly(ctx context.Context, prefix string, recs []upperbound.Record) (err error) {
	var out file.File
	if out, err = file.Create(ctx, prefix+".fa"); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, out, &err)
	w := fasta.NewWriter(out.Writer(ctx), fasta.DefaultLineWidth)
	for _, rec := range recs {
		if err = w.Write(rec.Record); err != nil {
			return
		}
	}
	if err = w.Flush(); err != nil {
		return
	}

	var idx file.File
	if idx, err = file.Create(ctx, prefix+".fa.fai"); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, idx, &err)
	if err = fasta.WriteIndex(idx.Writer(ctx), w.Index()); err != nil {
		return
	}
	log.Printf("wrote %d record(s) to %s.fa", len(recs), prefix)
	return
}

// writeRegions writes the unique regions of every chromosome as BED, with
// the number of the scaffold each region belongs to in the fourth column.
func writeRegions(ctx context.Context, path string, result *upperbound.Result) (err error) {
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, out, &err)
	w := tsv.NewWriter(out.Writer(ctx))
	for _, cr := range result.Chromosomes {
		for si, s := range cr.Scaffolds {
			for ri := s.FirstRegion; ri <= s.LastRegion; ri++ {
				w.WriteString(cr.Name)
				w.WriteInt64(int64(cr.Regions[ri].Start))
				w.WriteInt64(int64(cr.Regions[ri].End))
				w.WriteInt64(int64(si + 1))
				if err = w.EndLine(); err != nil {
					return
				}
			}
		}
	}
	return w.Flush()
}
