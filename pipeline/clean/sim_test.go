package clean

import (
	"fmt"
	"testing"

	"github.com/netdata/hostsmerge/pipeline/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	cleanSim struct {
		cfg     Config
		invalid bool
		inputs  []cleanSimInput
	}
	cleanSimInput struct {
		desc    string
		lines   []string
		wantSet model.Set
	}
)

func (sim cleanSim) run(t *testing.T) {
	c, err := New(sim.cfg)

	if sim.invalid {
		require.Error(t, err)
		return
	}

	require.NoError(t, err)
	require.NotNil(t, c)

	for i, input := range sim.inputs {
		name := fmt.Sprintf("input:'%s'[%d], lines:'%q', want:'%s'",
			input.desc, i+1, input.lines, input.wantSet)

		assert.Equalf(t, input.wantSet, c.Clean(input.lines), name)
	}
}
