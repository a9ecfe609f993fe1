package engine

import "github.com/tubejay/tubejay/player/adapter"

// Status is the playback state machine's state.
type Status int

const (
	StatusIdle       Status = iota // no track bound
	StatusResolving                // session being created
	StatusBuffering                // session ready, playback requested
	StatusPlaying                  // playback running
	StatusPaused                   // playback paused
	StatusEnded                    // track played to its end
	StatusUnplayable               // track cannot be played; Reason says why
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusResolving:
		return "resolving"
	case StatusBuffering:
		return "buffering"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusEnded:
		return "ended"
	case StatusUnplayable:
		return "unplayable"
	default:
		return "unknown"
	}
}

// machine is the pure part of the controller state.
type machine struct {
	Status   Status
	Duration float64
	Reason   string // user-facing failure message, set when Unplayable
	Code     int    // failure code, set when Unplayable via a player error
}

// effect is a side effect requested by the reducer, interpreted by the
// engine: the reducer itself stays pure so every transition can be tested
// without a live player.
type effect int

const (
	effApplyAudio     effect = iota // push volume/mute preferences to the session
	effRequestPlay                  // ask the session to start playback
	effStartTicker                  // progress polling must run
	effStopTicker                   // progress polling must stop
	effDestroySession               // tear the live session down
	effAdvanceNext                  // playback finished, move to the next track
)

// reduce applies one adapter event to the machine state. Events that make
// no sense in the current state are dropped without effects; an error event
// is terminal from every state.
func reduce(m machine, ev adapter.Event) (machine, []effect) {
	switch ev.Kind {
	case adapter.EventReady:
		if m.Status != StatusResolving {
			return m, nil
		}
		m.Status = StatusBuffering
		m.Duration = ev.Duration
		return m, []effect{effApplyAudio, effRequestPlay}

	case adapter.EventPlaying:
		switch m.Status {
		case StatusBuffering, StatusPaused:
			m.Status = StatusPlaying
			if ev.Duration > 0 {
				m.Duration = ev.Duration
			}
			return m, []effect{effStartTicker}
		default:
			return m, nil
		}

	case adapter.EventPaused:
		if m.Status != StatusPlaying {
			return m, nil
		}
		m.Status = StatusPaused
		return m, []effect{effStopTicker}

	case adapter.EventEnded:
		switch m.Status {
		case StatusBuffering, StatusPlaying, StatusPaused:
			m.Status = StatusEnded
			return m, []effect{effStopTicker, effAdvanceNext}
		default:
			return m, nil
		}

	case adapter.EventError:
		m.Status = StatusUnplayable
		m.Code = ev.Code
		m.Reason = adapter.MessageFor(ev.Code)
		return m, []effect{effStopTicker, effDestroySession}

	default:
		return m, nil
	}
}
