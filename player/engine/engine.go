// Package engine is the playback controller: it interprets adapter events,
// exposes the user-facing playback operations, runs the progress-polling
// ticker, and decides success vs failure per track.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tubejay/tubejay/player/adapter"
	"github.com/tubejay/tubejay/player/playlist"
	"github.com/tubejay/tubejay/player/prefs"
)

const defaultPollInterval = 500 * time.Millisecond

// invalidURLReason is surfaced when no video id can be extracted from a
// track's URL. No session is ever created in that case.
const invalidURLReason = "This link is not a recognizable video URL."

// Config wires the engine to its collaborators. Factory and Prefs are
// required; OnShuffle is optional (shuffle is unavailable without it).
type Config struct {
	Factory adapter.Factory
	Prefs   *prefs.Store

	// OnIndexChange is the host's callback for requested index changes.
	// The engine never changes the playlist itself.
	OnIndexChange func(newIndex int)

	// OnShuffle, when set, lets the host reorder the playlist.
	OnShuffle func()

	// PollInterval overrides the 500ms progress sampling interval.
	PollInterval time.Duration
}

// Snapshot is an immutable view of the engine for the host to render.
type Snapshot struct {
	Status      Status
	Track       playlist.Track
	Index       int
	PlaylistLen int
	Position    float64
	Duration    float64
	Volume      int
	Muted       bool
	Reason      string
	CanShuffle  bool
}

// Engine is the playback controller. At most one live session exists at
// any instant; events from replaced sessions are discarded by handle.
type Engine struct {
	factory       adapter.Factory
	prefsStore    *prefs.Store
	onIndexChange func(int)
	onShuffle     func()
	pollInterval  time.Duration

	mu          sync.Mutex
	closed      bool
	track       playlist.Track
	index       int
	playlistLen int
	m           machine
	position    float64
	volume      int
	muted       bool
	lastVolume  int // last non-zero volume, restored on unmute

	live     string // handle of the current session, "" when none
	session  adapter.Session
	tickStop chan struct{}
}

// New creates an engine seeded with the persisted volume and mute state.
// The persisted position is deliberately not used to auto-resume.
func New(cfg Config) *Engine {
	stored := cfg.Prefs.Load()

	lastVolume := stored.Volume
	if lastVolume == 0 {
		lastVolume = 100
	}

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	return &Engine{
		factory:       cfg.Factory,
		prefsStore:    cfg.Prefs,
		onIndexChange: cfg.OnIndexChange,
		onShuffle:     cfg.OnShuffle,
		pollInterval:  interval,
		index:         -1,
		volume:        stored.Volume,
		muted:         stored.Muted,
		lastVolume:    lastVolume,
	}
}

// Snapshot returns the current observable state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Status:      e.m.Status,
		Track:       e.track,
		Index:       e.index,
		PlaylistLen: e.playlistLen,
		Position:    e.position,
		Duration:    e.m.Duration,
		Volume:      e.volume,
		Muted:       e.muted,
		Reason:      e.m.Reason,
		CanShuffle:  e.onShuffle != nil,
	}
}

// Load binds the engine to the track at the given index. Any previous
// session is destroyed first, so at most one session is ever live. A track
// whose URL yields no video id goes straight to Unplayable without a
// session being created.
func (e *Engine) Load(track playlist.Track, index, playlistLen int) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}

	old := e.session
	e.session = nil
	e.live = ""
	e.stopTickerLocked()

	e.track = track
	e.index = index
	e.playlistLen = playlistLen
	e.position = 0
	e.m = machine{Status: StatusIdle}

	videoID, ok := playlist.ExtractVideoID(track.URL)
	if !ok {
		e.m.Status = StatusUnplayable
		e.m.Reason = invalidURLReason
		record := e.prefsRecordLocked()
		e.mu.Unlock()
		if old != nil {
			old.Destroy()
		}
		e.prefsStore.Save(record)
		return
	}

	handle := uuid.NewString()
	e.live = handle
	e.m.Status = StatusResolving
	volume, muted := e.volume, e.muted
	record := e.prefsRecordLocked()
	e.mu.Unlock()

	if old != nil {
		old.Destroy()
	}
	e.prefsStore.Save(record)

	session, err := e.factory.Create(adapter.Params{
		Handle:  handle,
		VideoID: videoID,
		Volume:  volume,
		Muted:   muted,
		Sink:    e.handleEvent,
	})

	e.mu.Lock()
	if e.closed || e.live != handle {
		// A newer track superseded this one while the session was
		// being created.
		e.mu.Unlock()
		if session != nil {
			session.Destroy()
		}
		return
	}
	if err != nil {
		slog.Warn("player session creation failed", "video", videoID, "error", err)
		e.live = ""
		e.m.Status = StatusUnplayable
		e.m.Code = adapter.CodeLoadFailure
		e.m.Reason = adapter.MessageFor(adapter.CodeLoadFailure)
		e.mu.Unlock()
		return
	}
	e.session = session
	e.mu.Unlock()
}

// UpdatePlaylist informs the engine that the host's playlist changed shape
// around the currently bound track, without rebinding it. The live session
// is untouched.
func (e *Engine) UpdatePlaylist(index, playlistLen int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.index = index
	e.playlistLen = playlistLen
}

// handleEvent is the adapter's sink. Stale events, ones whose handle does
// not match the live session, are dropped without touching any state.
func (e *Engine) handleEvent(ev adapter.Event) {
	e.mu.Lock()
	if e.closed || ev.Handle == "" || ev.Handle != e.live {
		e.mu.Unlock()
		return
	}

	next, effects := reduce(e.m, ev)
	e.m = next

	var applyAudio, requestPlay, advance bool
	var doomed adapter.Session
	for _, eff := range effects {
		switch eff {
		case effApplyAudio:
			applyAudio = true
		case effRequestPlay:
			requestPlay = true
		case effStartTicker:
			e.startTickerLocked()
		case effStopTicker:
			e.stopTickerLocked()
		case effDestroySession:
			doomed = e.session
			e.session = nil
			e.live = ""
		case effAdvanceNext:
			advance = true
		}
	}

	if ev.Kind == adapter.EventEnded {
		e.position = e.m.Duration
	}

	session := e.session
	volume, muted := e.volume, e.muted
	nav := e.navigatorLocked()
	e.mu.Unlock()

	if applyAudio && session != nil {
		if err := session.SetMuted(muted); err != nil {
			slog.Debug("failed to apply mute state", "error", err)
		}
		if err := session.SetVolume(volume); err != nil {
			slog.Debug("failed to apply volume", "error", err)
		}
	}
	if requestPlay && session != nil {
		if err := session.SetPause(false); err != nil {
			slog.Debug("failed to request playback", "error", err)
		}
	}
	if doomed != nil {
		// This may be the session's own delivery goroutine, and Destroy
		// blocks until event delivery has drained.
		go doomed.Destroy()
	}
	if advance {
		// Synchronous auto-advance; a no-op on the last track, in
		// which case the state stays Ended.
		nav.Next()
	}
}

// TogglePlayPause toggles between Playing and Paused. A no-op when no
// session exists. Resuming force-unmutes: "resumed but silent" is not a
// state the product allows.
func (e *Engine) TogglePlayPause() {
	e.mu.Lock()
	session := e.session
	status := e.m.Status
	e.mu.Unlock()

	if session == nil {
		return
	}

	switch status {
	case StatusPlaying:
		if err := session.SetPause(true); err != nil {
			slog.Debug("failed to pause", "error", err)
		}
	case StatusPaused:
		if muted, err := session.Muted(); err == nil && muted {
			e.mu.Lock()
			userMuted := e.muted
			e.mu.Unlock()
			if !userMuted {
				_ = session.SetMuted(false)
			}
		}
		if err := session.SetPause(false); err != nil {
			slog.Debug("failed to resume", "error", err)
		}
	}
}

// Seek jumps to the given position, clamped to [0, duration]. The local
// position is updated optimistically rather than waiting for the next
// poll tick.
func (e *Engine) Seek(seconds float64) {
	e.mu.Lock()
	session := e.session
	if session == nil {
		e.mu.Unlock()
		return
	}
	if seconds < 0 {
		seconds = 0
	}
	if e.m.Duration > 0 && seconds > e.m.Duration {
		seconds = e.m.Duration
	}
	e.position = seconds
	e.mu.Unlock()

	if err := session.Seek(seconds); err != nil {
		slog.Debug("seek failed", "error", err)
	}
}

// SeekBy seeks relative to the current position.
func (e *Engine) SeekBy(deltaSeconds float64) {
	e.mu.Lock()
	target := e.position + deltaSeconds
	e.mu.Unlock()
	e.Seek(target)
}

// SetVolume sets the volume, clamped to [0,100]. Zero implies muted. The
// preference record is written on every change.
func (e *Engine) SetVolume(level int) {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}

	e.mu.Lock()
	e.volume = level
	e.muted = level == 0
	if level > 0 {
		e.lastVolume = level
	}
	muted := e.muted
	session := e.session
	record := e.prefsRecordLocked()
	e.mu.Unlock()

	if session != nil {
		_ = session.SetVolume(level)
		_ = session.SetMuted(muted)
	}
	e.prefsStore.Save(record)
}

// AdjustVolume changes the volume by a delta, with the usual clamping.
func (e *Engine) AdjustVolume(delta int) {
	e.mu.Lock()
	level := e.volume + delta
	e.mu.Unlock()
	e.SetVolume(level)
}

// ToggleMute flips the mute state. Unmuting restores the last known
// non-zero volume.
func (e *Engine) ToggleMute() {
	e.mu.Lock()
	e.muted = !e.muted
	if !e.muted && e.volume == 0 {
		e.volume = e.lastVolume
	}
	volume, muted := e.volume, e.muted
	session := e.session
	record := e.prefsRecordLocked()
	e.mu.Unlock()

	if session != nil {
		_ = session.SetMuted(muted)
		_ = session.SetVolume(volume)
	}
	e.prefsStore.Save(record)
}

// Next requests the next track through the host callback. No-op (and no
// callback) at the last track: the playlist never wraps.
func (e *Engine) Next() bool {
	e.mu.Lock()
	nav := e.navigatorLocked()
	e.mu.Unlock()
	return nav.Next()
}

// Previous requests the previous track. No-op at the first track.
func (e *Engine) Previous() bool {
	e.mu.Lock()
	nav := e.navigatorLocked()
	e.mu.Unlock()
	return nav.Previous()
}

// Shuffle delegates to the host's shuffle callback, when present.
func (e *Engine) Shuffle() {
	e.mu.Lock()
	nav := e.navigatorLocked()
	e.mu.Unlock()
	nav.Shuffle()
}

// Close tears the engine down: ticker stopped, session destroyed, final
// preference record written. The engine is unusable afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.stopTickerLocked()
	old := e.session
	e.session = nil
	e.live = ""
	record := e.prefsRecordLocked()
	e.mu.Unlock()

	if old != nil {
		old.Destroy()
	}
	e.prefsStore.Save(record)
}

func (e *Engine) navigatorLocked() playlist.Navigator {
	return playlist.Navigator{
		Length:        e.playlistLen,
		Current:       e.index,
		OnIndexChange: e.onIndexChange,
		OnShuffle:     e.onShuffle,
	}
}

func (e *Engine) prefsRecordLocked() prefs.Preferences {
	index := e.index
	if index < 0 {
		index = 0
	}
	return prefs.Preferences{
		Volume:       e.volume,
		Muted:        e.muted,
		LastIndex:    index,
		LastPosition: e.position,
	}
}

// startTickerLocked starts the progress poller, always cancelling any
// previous one first: exactly one ticker may run at a time.
func (e *Engine) startTickerLocked() {
	e.stopTickerLocked()
	stop := make(chan struct{})
	e.tickStop = stop
	go e.pollProgress(e.session, e.live, stop)
}

func (e *Engine) stopTickerLocked() {
	if e.tickStop != nil {
		close(e.tickStop)
		e.tickStop = nil
	}
}

// pollProgress samples the session position at a fixed interval while the
// state is Playing. It exits as soon as its stop channel closes or its
// session is no longer the live one.
func (e *Engine) pollProgress(session adapter.Session, handle string, stop chan struct{}) {
	if session == nil {
		return
	}
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			position, err := session.Position()
			if err != nil {
				continue
			}
			e.mu.Lock()
			if e.live == handle && e.m.Status == StatusPlaying {
				e.position = position
			}
			e.mu.Unlock()
		}
	}
}
