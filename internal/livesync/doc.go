// Package livesync keeps a view's telemetry current by combining a push
// channel with periodic HTTP fetches.
//
// # Architecture
//
// A Controller owns everything a single view needs: the websocket stream, the
// rolling buffers, and a retained chart. All of that state is mutated from one
// goroutine, the event loop started by Run. Other goroutines only produce
// events:
//
//	fetch goroutine   -> fetch result   -+
//	dial goroutine    -> dial result     |
//	reader goroutine  -> frame / closed  +-> event loop -> buffers -> Sink
//	reconnect timer   -----------------  |                       -> Chart
//	refresh ticker    -----------------  +
//
// Each event is handled to completion before the next one is read, so the
// three post-mutation steps (summary, chart model rebuild, chart update) never
// interleave with another mutation.
//
// # Modes
//
//	ModeAggregate  fleet dashboard; keeps the latest sample per host and a
//	               rolling buffer of fleet-average points (20 by default)
//	ModeDetail     one host; keeps a rolling buffer of that host's samples
//	               (100 by default)
//
// # Connection lifecycle
//
//	DISCONNECTED -> CONNECTING -> CONNECTED
//	      ^                           |
//	      +------ close / error ------+
//
// Any dial failure, read error or close moves the controller to DISCONNECTED
// and schedules exactly one reconnect after ReconnectDelay. There is no
// backoff and no attempt limit.
//
// # Refresh
//
// Independently of the stream, a ticker fires every RefreshInterval. The
// aggregate view appends a fresh fleet-average point; the detail view repeats
// the bootstrap fetch and rebuilds its buffer from the result.
//
// Time comes from an injected k8s.io/utils/clock so tests can step it.
package livesync
