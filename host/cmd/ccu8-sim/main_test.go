package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccu8pwm/core"
)

func TestBringUpAndCompare(t *testing.T) {
	variant = "xmc4700"
	defer func() { variant = "xmc1400" }()
	s, err := bringUp()
	require.NoError(t, err)
	assert.Equal(t, core.StateRunning, s.res.State)

	// dead time no longer fits beside a 10 tick active phase
	err = s.setCompare(10)
	assert.True(t, errors.Is(err, core.ErrInvalidConfig), "got %v", err)
	assert.EqualValues(t, 360, s.plan.Compare)

	require.NoError(t, s.setCompare(540))
	assert.EqualValues(t, 540, s.res.Timing.Compare)

	// the running period finishes with the old value
	first := s.sampler.Run(int(s.sampler.Period())).Measure()
	assert.EqualValues(t, 360-22, first.DirectHigh)
	m := s.sampler.Run(int(s.sampler.Period())).Measure()
	assert.EqualValues(t, 540-22, m.DirectHigh)
}

func TestBringUpRejectsTicks(t *testing.T) {
	defer func(n int) { *ticks = n }(*ticks)
	for _, n := range []int{0, -1} {
		*ticks = n
		_, err := bringUp()
		assert.ErrorContains(t, err, "ticks", "ticks %d", n)
	}
}

func TestPrintWave(t *testing.T) {
	s, err := bringUp()
	require.NoError(t, err)

	var out bytes.Buffer
	s.printWave(&out, 720)
	assert.Contains(t, out.String(), "ticks=720 direct=338 inverted=338 overlap=0 dead=44")
	assert.True(t, strings.HasPrefix(out.String(), "ST  "), "got %q", out.String())
}

func TestBringUpUnknownVariant(t *testing.T) {
	variant = "xmc4800"
	defer func() { variant = "xmc1400" }()
	_, err := bringUp()
	assert.True(t, errors.Is(err, core.ErrUnknownVariant), "got %v", err)
}
