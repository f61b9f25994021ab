package replay

import (
	"context"
	"sync/atomic"

	"github.com/guiguan/caster"
	"github.com/npillmayer/segtree"
)

// Broadcaster replays a single trace to any number of observers. Each
// observer subscribes before the broadcast starts and receives every event
// in order. A broadcaster is good for one broadcast; afterwards all observer
// channels are closed.
type Broadcaster struct {
	cast   *caster.Caster
	player *Player
	closed atomic.Bool // set before the caster is closed; Close returns before Done fires
}

// NewBroadcaster creates a broadcaster pacing its events with player. If
// player is nil, events are published without pacing.
//
// Cancelling ctx closes the broadcaster and all observer channels.
func NewBroadcaster(ctx context.Context, player *Player) *Broadcaster {
	if player == nil {
		player = NewPlayer(0, 1)
	}
	return &Broadcaster{
		cast:   caster.New(ctx),
		player: player,
	}
}

// Subscribe registers an observer. The returned channel delivers the events
// of the broadcast and is closed when the broadcast ends or ctx is done.
// capacity is the observer's buffer; a slow observer with a full buffer holds
// back the broadcast for everybody.
//
// Subscribing to a closed broadcaster returns ErrClosed.
func (b *Broadcaster) Subscribe(ctx context.Context, capacity uint) (<-chan segtree.NodeEvent, error) {
	if b.isClosed() {
		return nil, ErrClosed
	}
	sub, _ := b.cast.Sub(ctx, capacity) // always ok; a closed caster hands out a closed channel
	out := make(chan segtree.NodeEvent, capacity)
	go func() {
		defer close(out)
		for msg := range sub {
			e, ok := msg.(segtree.NodeEvent)
			if !ok {
				continue
			}
			select {
			case out <- e:
			case <-ctx.Done():
				b.cast.Unsub(sub)
				return
			}
		}
	}()
	return out, nil
}

func (b *Broadcaster) isClosed() bool {
	if b.closed.Load() {
		return true
	}
	select {
	case <-b.cast.Done():
		return true
	default:
		return false
	}
}

func (b *Broadcaster) close() {
	b.closed.Store(true)
	b.cast.Close()
}

// Broadcast replays tr to all subscribers and closes the broadcaster. It
// returns the number of events published.
//
// Cancelling ctx stops the broadcast early and is not an error. If the
// broadcaster is closed before all events are out (its own context is done),
// Broadcast returns the number of events published so far and ErrClosed.
func (b *Broadcaster) Broadcast(ctx context.Context, tr *segtree.Trace) (int, error) {
	defer b.close()
	if b.isClosed() {
		return 0, ErrClosed
	}
	st, err := tr.Replay()
	if err != nil {
		return 0, err
	}
	published, dropped := 0, false
	b.player.Play(ctx, st, func(e segtree.NodeEvent) {
		if !b.cast.Pub(e) {
			dropped = true
			st.Stop()
			return
		}
		published++
	})
	tracer().P("replay", "broadcast").Infof("published %d of %d events", published, tr.Len())
	if dropped {
		return published, ErrClosed
	}
	return published, nil
}
