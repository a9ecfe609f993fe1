// Package adapter owns the lifecycle of external player instances: one
// player process per session, bound to one video id, with the player's
// native surface translated into a small closed event set.
package adapter

// EventKind enumerates the closed set of events a session can emit.
type EventKind int

const (
	EventReady   EventKind = iota // player loaded the video and can accept commands
	EventPlaying                  // playback is running
	EventPaused                   // playback is paused
	EventEnded                    // the video played to its end
	EventError                    // playback failed, Event.Code carries the reason
)

func (k EventKind) String() string {
	switch k {
	case EventReady:
		return "ready"
	case EventPlaying:
		return "playing"
	case EventPaused:
		return "paused"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one lifecycle notification from a session. Handle identifies the
// emitting session so consumers can discard stale events after a session
// has been replaced.
type Event struct {
	Handle   string
	Kind     EventKind
	Duration float64 // seconds; set on Ready and Playing
	Code     int     // set on Error
}

// EventSink receives session events. Sinks are called from the session's
// reader goroutine and must not block for long.
type EventSink func(Event)

// Params describes one session to create. Handle is chosen by the caller
// and tags every event the session emits.
type Params struct {
	Handle  string
	VideoID string
	Volume  int // initial volume, 0-100
	Muted   bool
	Sink    EventSink
}

// Session is one live player instance. All methods are safe for concurrent
// use. Destroy is idempotent and guarantees no events are delivered after
// it returns.
type Session interface {
	Handle() string
	SetPause(paused bool) error
	Seek(seconds float64) error
	SetVolume(level int) error
	SetMuted(muted bool) error
	Position() (float64, error)
	Muted() (bool, error)
	Destroy()
}

// Factory creates sessions. The engine depends on this interface so tests
// can substitute a fake player.
type Factory interface {
	Create(p Params) (Session, error)
}
