package replay

import (
	"context"
	"time"

	"github.com/npillmayer/segtree"
	"golang.org/x/time/rate"
)

// Player replays traces at a fixed pace.
type Player struct {
	limiter *rate.Limiter
}

// NewPlayer creates a player delivering one event per interval. burst events
// may be delivered back to back before pacing sets in. An interval <= 0
// disables pacing.
func NewPlayer(interval time.Duration, burst int) *Player {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Player{limiter: rate.NewLimiter(limit, max(burst, 1))}
}

// Play delivers the remaining events of st to fn, paced by the player's
// limiter. It returns the number of events delivered.
//
// If ctx is cancelled or its deadline would be exceeded by the next tick,
// the replay is stopped. This is a regular way to end a replay and is not
// reported as an error.
func (p *Player) Play(ctx context.Context, st *segtree.Stepper, fn func(segtree.NodeEvent)) int {
	n := 0
	for st.Remaining() > 0 {
		if err := p.limiter.Wait(ctx); err != nil {
			st.Stop()
			tracer().P("replay", "player").Infof("replay stopped after %d events: %v", n, err)
			return n
		}
		e, ok := st.Next()
		if !ok {
			break
		}
		fn(e)
		n++
	}
	tracer().P("replay", "player").Debugf("replay finished, %d events", n)
	return n
}

// PlayTrace starts the replay of tr and plays it.
func (p *Player) PlayTrace(ctx context.Context, tr *segtree.Trace, fn func(segtree.NodeEvent)) (int, error) {
	st, err := tr.Replay()
	if err != nil {
		return 0, err
	}
	return p.Play(ctx, st, fn), nil
}
