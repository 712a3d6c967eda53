package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockStartPauseResume(t *testing.T) {
	clock, err := NewClock().Start(RegularPeriodSeconds, PeriodRegular)
	require.NoError(t, err)
	assert.True(t, clock.Running)
	assert.True(t, clock.Started)
	assert.Equal(t, 0, clock.Elapsed)

	clock = clock.Tick().Tick().Tick()
	assert.Equal(t, 3, clock.Elapsed)

	clock = clock.Pause()
	assert.False(t, clock.Running)
	clock = clock.Tick()
	assert.Equal(t, 3, clock.Elapsed, "paused clock must not advance")

	clock = clock.Resume()
	assert.True(t, clock.Running)
}

func TestClockStopsAtLimit(t *testing.T) {
	clock, err := NewClock().Start(3, PeriodExtra)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		clock = clock.Tick()
	}
	assert.Equal(t, 3, clock.Elapsed)
	assert.False(t, clock.Running)
	assert.True(t, clock.Started)

	clock = clock.Resume()
	assert.False(t, clock.Running, "resume is not allowed once the period ran out")
}

func TestClockStartRequiresFinishedPeriod(t *testing.T) {
	clock, err := NewClock().Start(2, PeriodRegular)
	require.NoError(t, err)

	_, err = clock.Start(RegularPeriodSeconds, PeriodRegular)
	require.ErrorIs(t, err, ErrPeriodInProgress)

	clock = clock.Tick().Tick()
	assert.True(t, clock.AllowStart())
	next, err := clock.Start(ExtraPeriodSeconds, PeriodExtra)
	require.NoError(t, err)
	assert.Equal(t, PeriodExtra, next.Kind)
	assert.Equal(t, 0, next.Elapsed)
}

func TestClockResumeBeforeStart(t *testing.T) {
	clock := NewClock().Resume()
	assert.False(t, clock.Running)
}

func TestClockReset(t *testing.T) {
	clock, err := NewClock().Start(SuddenDeathSeconds, PeriodPenalty)
	require.NoError(t, err)
	clock = clock.Tick().Reset()

	assert.Equal(t, NewClock(), clock)
	assert.Equal(t, RegularPeriodSeconds, clock.Limit)
	assert.Equal(t, PeriodNone, clock.Kind)
}

func TestClockSuddenDeathNeverExpires(t *testing.T) {
	clock, err := NewClock().Start(PeriodPenalty.Limit(), PeriodPenalty)
	require.NoError(t, err)
	assert.True(t, clock.SuddenDeath())

	for i := 0; i < 5000; i++ {
		clock = clock.Tick()
	}
	assert.True(t, clock.Running)
	assert.Equal(t, 5000, clock.Elapsed)

	ended, ok := clock.EndPeriod()
	require.True(t, ok)
	assert.Equal(t, PeriodNone, ended.Kind)
}

func TestClockEndPeriod(t *testing.T) {
	tests := []struct {
		name    string
		kind    PeriodKind
		ticks   int
		wantEnd bool
	}{
		{name: "regular_running", kind: PeriodRegular, ticks: 10, wantEnd: false},
		{name: "regular_elapsed", kind: PeriodRegular, ticks: RegularPeriodSeconds, wantEnd: true},
		{name: "extra_running", kind: PeriodExtra, ticks: 299, wantEnd: false},
		{name: "extra_elapsed", kind: PeriodExtra, ticks: ExtraPeriodSeconds, wantEnd: true},
		{name: "penalty_any_time", kind: PeriodPenalty, ticks: 1, wantEnd: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clock, err := NewClock().Start(test.kind.Limit(), test.kind)
			require.NoError(t, err)
			for i := 0; i < test.ticks; i++ {
				clock = clock.Tick()
			}
			next, ended := clock.EndPeriod()
			assert.Equal(t, test.wantEnd, ended)
			if ended {
				assert.Equal(t, NewClock(), next)
			} else {
				assert.Equal(t, clock, next)
			}
		})
	}
}

func TestClockNeverExceedsLimit(t *testing.T) {
	ops := []func(Clock) Clock{
		Clock.Tick, Clock.Tick, Clock.Pause, Clock.Tick, Clock.Resume,
		Clock.Tick, Clock.Tick, Clock.Tick, Clock.Resume, Clock.Tick,
	}

	clock, err := NewClock().Start(4, PeriodRegular)
	require.NoError(t, err)
	for round := 0; round < 5; round++ {
		for _, op := range ops {
			clock = op(clock)
			require.GreaterOrEqual(t, clock.Elapsed, 0)
			require.LessOrEqual(t, clock.Elapsed, clock.Limit)
		}
	}
	assert.Equal(t, 4, clock.Elapsed)
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{
		0:    "00:00",
		59:   "00:59",
		60:   "01:00",
		1800: "30:00",
		-5:   "00:00",
	}
	for seconds, want := range tests {
		assert.Equal(t, want, FormatClock(seconds), "seconds=%d", seconds)
	}
}
