package upperbound

import (
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil/expect"
)

func TestValidate(t *testing.T) {
	valid := DefaultOpts
	valid.Mode = MatePair
	expect.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(o *Opts)
	}{
		{"no mode", func(o *Opts) { o.Mode = ModeUnset }},
		{"negative overlap", func(o *Opts) { o.MinOverlap = -1 }},
		{"zero connections", func(o *Opts) { o.LongReadMinConnections = 0 }},
		{"negative contig length", func(o *Opts) { o.MinContigLength = -5 }},
		{"coverage", func(o *Opts) { o.RepeatCoverageFraction = 1.5 }},
		{"insert window", func(o *Opts) { o.InsertSizeMin, o.InsertSizeMax = 500, 300 }},
		{"gap char", func(o *Opts) { o.GapChar = 0 }},
	}
	for _, tt := range tests {
		o := valid
		tt.modify(&o)
		err := o.Validate()
		expect.NotNil(t, err, tt.name)
		expect.True(t, errors.Is(errors.Invalid, err), tt.name)
	}
}

func TestModeString(t *testing.T) {
	for _, m := range []Mode{MatePair, LongRead} {
		expect.EQ(t, ParseMode(m.String()), m)
	}
	expect.EQ(t, ParseMode("illumina"), ModeUnset)
}

func TestRepeatThreshold(t *testing.T) {
	o := DefaultOpts
	o.Mode = MatePair
	expect.EQ(t, o.RepeatThreshold(0), DefaultRepeatLength)
	expect.EQ(t, o.RepeatThreshold(3000), 3000)
	o.MinRepeatLength = 800
	expect.EQ(t, o.RepeatThreshold(3000), 800)

	o = DefaultOpts
	o.Mode = LongRead
	expect.EQ(t, o.RepeatThreshold(3000), DefaultRepeatLength)
	expect.EQ(t, o.MinConnections(), 1)
	o.Mode = MatePair
	expect.EQ(t, o.MinConnections(), 2)
}
