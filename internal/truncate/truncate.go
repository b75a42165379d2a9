// Package truncate shrinks a conversation history to roughly half its length
// while keeping the messages presumed most valuable. The first message is
// never dropped: it anchors the task identity for everything that follows.
package truncate

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/contextkeeper/contextkeeper/internal/extract"
	"github.com/contextkeeper/contextkeeper/internal/schema"
	"github.com/contextkeeper/contextkeeper/internal/score"
)

// preserveThreshold is the minimum score at which a message's patterns are
// forwarded to the recorder, independent of whether the message survives.
const preserveThreshold = 5

// PatternRecorder receives patterns extracted from high-importance messages.
// The memory store implements this.
type PatternRecorder interface {
	RecordPattern(ctx context.Context, pattern string) error
}

// Engine performs the selective-eviction pass. A nil recorder disables
// pattern learning; everything else is unaffected.
type Engine struct {
	recorder PatternRecorder
}

// NewEngine returns an Engine. recorder may be nil.
func NewEngine(recorder PatternRecorder) *Engine {
	return &Engine{recorder: recorder}
}

type scoredMessage struct {
	index  int
	result score.Result
}

// Reduce returns a subsequence of messages of length ceil(len/2): the anchor
// (first message) unconditionally, then the highest-scoring of the rest, in
// their original order. Ties break toward earlier messages. The input is
// never modified; a single-message input comes back unchanged.
//
// Pattern learning runs as a side effect when a recorder is present: every
// scored message at or above the preservation threshold has its tagged spans
// forwarded, whether or not it was retained. A failed recording is logged
// and does not affect selection.
func (e *Engine) Reduce(ctx context.Context, messages []schema.Message) []schema.Message {
	n := len(messages)
	if n <= 1 {
		return messages
	}

	scored := make([]scoredMessage, 0, n-1)
	for i := 1; i < n; i++ {
		r := score.Message(messages[i])
		scored = append(scored, scoredMessage{index: i, result: r})

		if e.recorder != nil && r.Score >= preserveThreshold {
			for _, p := range extract.Patterns(messages[i].Flatten()) {
				if err := e.recorder.RecordPattern(ctx, p); err != nil {
					slog.Warn("failed to record pattern", "err", err)
				}
			}
		}
	}

	target := (n + 1) / 2 // ceil(n/2)
	extra := target - 1
	if extra <= 0 {
		return []schema.Message{messages[0]}
	}

	// Stable sort keeps original relative order among equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].result.Score > scored[j].result.Score
	})
	keep := scored[:extra]

	// Re-sort the survivors into conversation order; the engine thins the
	// history, it never reorders it.
	sort.Slice(keep, func(i, j int) bool { return keep[i].index < keep[j].index })

	out := make([]schema.Message, 0, target)
	out = append(out, messages[0])
	for _, s := range keep {
		out = append(out, messages[s.index])
	}

	slog.Info("conversation truncated", "from", n, "to", len(out))
	return out
}

// ExtractCriticalContext runs pattern extraction over the whole conversation,
// not just high-scoring messages. It selects nothing and persists nothing.
func ExtractCriticalContext(messages []schema.Message) extract.Result {
	texts := make([]string, 0, len(messages))
	for _, m := range messages {
		texts = append(texts, m.Flatten())
	}
	return extract.All(strings.Join(texts, "\n"))
}
