package reveal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensRoundTrip(t *testing.T) {
	for _, text := range []string{
		"Hello world",
		"  leading space and trailing  ",
		"line one\nline two\n\n- bullet",
		"single",
		"   ",
		"",
	} {
		assert.Equal(t, text, strings.Join(Tokens(text), ""), "%q", text)
	}
}

func TestTokensCount(t *testing.T) {
	assert.Len(t, Tokens("Ajith built **JobConnect Pro** with React."), 6)
	assert.Len(t, Tokens(" a  b\tc\n"), 3)
	assert.Empty(t, Tokens(""))
}

func TestRunPerformsOneUpdatePerToken(t *testing.T) {
	text := "He worked on three projects:\n\n- A\n- B\n- C"
	r := New(0)

	var steps []Step
	n, err := r.Run(context.Background(), text, func(s Step) {
		steps = append(steps, s)
	})
	require.NoError(t, err)

	want := len(strings.Fields(text))
	assert.Equal(t, want, n)
	require.Len(t, steps, want)
	assert.Equal(t, text, steps[len(steps)-1].Shown)
	assert.Equal(t, 0, steps[len(steps)-1].Remain)
	for i := 1; i < len(steps); i++ {
		assert.True(t, strings.HasPrefix(steps[i].Shown, steps[i-1].Shown))
	}
}

func TestRunWaitsBetweenTokens(t *testing.T) {
	r := New(10 * time.Millisecond)
	var waits []time.Duration
	r.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	n, err := r.Run(context.Background(), "one two three", func(Step) {})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 10 * time.Millisecond}, waits)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := New(time.Hour)

	calls := 0
	n, err := r.Run(ctx, "one two three", func(Step) {
		calls++
		cancel()
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, calls)
}
