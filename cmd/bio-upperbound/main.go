// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"v.io/x/lib/cmdline"
)

func newCmdBuild() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "build",
		Short: "Build the upper-bound assembly",
		Long: `Build writes the upper-bound assembly to <out>.fa, wrapped at 60 columns,
and its samtools faidx index to <out>.fa.fai.`,
	}
	flags := &inputFlags{}
	flags.register(&cmd.Flags)
	out := cmd.Flags.String("out", "", "Output path prefix (required)")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("build takes no arguments, but got %v", argv)
		}
		if *out == "" {
			return fmt.Errorf("-out is required")
		}
		ctx := vcontext.Background()
		result, err := build(ctx, flags)
		if err != nil {
			return err
		}
		return writeAssembly(ctx, *out, result.Records)
	})
	return cmd
}

func newCmdRegions() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "regions",
		Short: "Write the unique regions and their scaffolds as BED",
	}
	flags := &inputFlags{}
	flags.register(&cmd.Flags)
	out := cmd.Flags.String("out", "", "Output BED path (required)")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("regions takes no arguments, but got %v", argv)
		}
		if *out == "" {
			return fmt.Errorf("-out is required")
		}
		ctx := vcontext.Background()
		result, err := build(ctx, flags)
		if err != nil {
			return err
		}
		return writeRegions(ctx, *out, result)
	})
	return cmd
}

func newCmdInsertSize() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "insert-size",
		Short:    "Estimate the insert-size window of a mate-pair library",
		ArgsName: "bampath",
	}
	minMapQ := cmd.Flags.Int("min-mapq", 20, "Alignments below this mapping quality are ignored")
	sampleSize := cmd.Flags.Int("sample-size", 10000, "Number of pairs to sample")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("insert-size takes one pathname argument, but got %v", argv)
		}
		return insertSize(vcontext.Background(), argv[0], *minMapQ, *sampleSize)
	})
	return cmd
}

func newCmdChecksum() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "checksum",
		Short:    "Compute checksums of the records of a FASTA file",
		ArgsName: "path",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("checksum takes one pathname argument, but got %v", argv)
		}
		return checksum(vcontext.Background(), argv[0])
	})
	return cmd
}

func main() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-upperbound",
			Short:    "Construct reference-guided upper-bound assemblies",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdBuild(),
				newCmdRegions(),
				newCmdInsertSize(),
				newCmdChecksum(),
			},
		})
}
