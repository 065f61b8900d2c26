// Package reveal splits a finished answer into words and replays it one word
// at a time.
package reveal

import (
	"context"
	"regexp"
	"time"
)

const DefaultDelay = 35 * time.Millisecond

var wordPattern = regexp.MustCompile(`\S+\s*`)

// Tokens splits text into whitespace-delimited words. Each token keeps its
// trailing whitespace and leading whitespace is folded into the first token,
// so joining the tokens gives back text unchanged.
func Tokens(text string) []string {
	locs := wordPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		if text == "" {
			return nil
		}
		return []string{text}
	}

	tokens := make([]string, 0, len(locs))
	for i, loc := range locs {
		start := loc[0]
		if i == 0 {
			start = 0
		}
		tokens = append(tokens, text[start:loc[1]])
	}
	return tokens
}

// Step is one incremental update: the token just revealed and everything
// revealed so far.
type Step struct {
	Index  int
	Token  string
	Shown  string
	Remain int
}

type Revealer struct {
	Delay time.Duration
	sleep func(ctx context.Context, d time.Duration) error
}

func New(delay time.Duration) *Revealer {
	if delay < 0 {
		delay = 0
	}
	return &Revealer{Delay: delay, sleep: sleepCtx}
}

// Run calls fn once per token of text, waiting Delay between calls. It
// returns the number of updates performed. Only ctx cancellation stops it
// early.
func (r *Revealer) Run(ctx context.Context, text string, fn func(Step)) (int, error) {
	tokens := Tokens(text)
	shown := make([]byte, 0, len(text))

	for i, tok := range tokens {
		if i > 0 && r.Delay > 0 {
			if err := r.sleep(ctx, r.Delay); err != nil {
				return i, err
			}
		}
		shown = append(shown, tok...)
		fn(Step{
			Index:  i,
			Token:  tok,
			Shown:  string(shown),
			Remain: len(tokens) - i - 1,
		})
	}
	return len(tokens), nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
