package adapter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

const (
	watchURLPrefix = "https://www.youtube.com/watch?v="

	defaultReadyTimeout = 5 * time.Second
	readyPollInterval   = 100 * time.Millisecond
)

// Options configures the mpv-backed player.
type Options struct {
	// Binary overrides the player executable name ("mpv" by default).
	Binary string

	// VideoOutput disables --no-video when true; by default playback is
	// audio only, which is what a terminal host wants.
	VideoOutput bool

	// SocketDir is where per-session IPC sockets are created. Defaults
	// to os.TempDir().
	SocketDir string

	// ReadyTimeout caps how long Create waits for the spawned player to
	// accept IPC connections before giving up and killing it.
	ReadyTimeout time.Duration
}

// MPV creates playback sessions backed by mpv processes.
type MPV struct {
	bootstrap *Bootstrap
	opts      Options
}

var _ Factory = (*MPV)(nil)

func NewMPV(bootstrap *Bootstrap, opts Options) *MPV {
	if bootstrap == nil {
		if opts.Binary == "" {
			bootstrap = DefaultBootstrap()
		} else {
			// A binary override gets its own bootstrap; the shared
			// instance is never written to.
			bootstrap = &Bootstrap{Binary: opts.Binary}
		}
	} else if opts.Binary != "" && bootstrap.Binary == "" {
		bootstrap.Binary = opts.Binary
	}
	return &MPV{bootstrap: bootstrap, opts: opts}
}

// Create spawns one mpv process for the given video id and waits, with a
// bounded retry budget, for its IPC socket to come up. The player starts
// paused and muted; the controller unmutes and starts playback once the
// session reports ready. On timeout the spawn is killed and a creation
// failure returned rather than hanging.
func (m *MPV) Create(p Params) (Session, error) {
	binPath, err := m.bootstrap.Ensure()
	if err != nil {
		return nil, err
	}

	socketDir := m.opts.SocketDir
	if socketDir == "" {
		socketDir = os.TempDir()
	}
	socketPath := filepath.Join(socketDir, "tubejay-"+p.Handle+".sock")

	args := []string{
		"--no-terminal",
		"--input-ipc-server=" + socketPath,
		"--pause",
		"--mute=yes",
		fmt.Sprintf("--volume=%d", clampVolume(p.Volume)),
	}
	if !m.opts.VideoOutput {
		args = append(args, "--no-video")
	}
	args = append(args, watchURLPrefix+p.VideoID)

	cmd := exec.Command(binPath, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting player: %w", err)
	}

	conn, err := dialWithRetry(socketPath, m.readyTimeout())
	if err != nil {
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
		_ = os.Remove(socketPath)
		return nil, fmt.Errorf("player did not become ready: %w", err)
	}

	s := &mpvSession{
		handle:     p.Handle,
		sink:       p.Sink,
		cmd:        cmd,
		socketPath: socketPath,
	}
	s.ipc = newIPCConn(conn, s.onIPCEvent)

	if err := s.ipc.observe("pause"); err != nil {
		s.Destroy()
		return nil, fmt.Errorf("binding player events: %w", err)
	}

	return s, nil
}

func (m *MPV) readyTimeout() time.Duration {
	if m.opts.ReadyTimeout > 0 {
		return m.opts.ReadyTimeout
	}
	return defaultReadyTimeout
}

// dialWithRetry polls the socket with a short fixed delay until it accepts
// or the budget is exhausted. Bounded by construction: never a busy loop,
// never an unbounded wait.
func dialWithRetry(socketPath string, timeout time.Duration) (net.Conn, error) {
	deadline := time.Now().Add(timeout)
	for {
		conn, err := net.Dial("unix", socketPath)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("socket %s not ready within %s: %w", socketPath, timeout, err)
		}
		time.Sleep(readyPollInterval)
	}
}

// mpvSession is one live mpv process bound to one video id.
type mpvSession struct {
	handle     string
	sink       EventSink
	cmd        *exec.Cmd
	socketPath string
	ipc        *ipcConn

	// emitMu gates event delivery: Destroy takes the write side, so once
	// it returns no emit can be in flight or started.
	emitMu    sync.RWMutex
	destroyed bool

	stateMu  sync.Mutex
	loaded   bool
	paused   bool // last observed pause property, valid once loaded
	duration float64
}

var _ Session = (*mpvSession)(nil)

func (s *mpvSession) Handle() string { return s.handle }

func (s *mpvSession) SetPause(paused bool) error {
	return s.ipc.setProperty("pause", paused)
}

func (s *mpvSession) Seek(seconds float64) error {
	_, err := s.ipc.command("seek", seconds, "absolute")
	return err
}

func (s *mpvSession) SetVolume(level int) error {
	return s.ipc.setProperty("volume", clampVolume(level))
}

func (s *mpvSession) SetMuted(muted bool) error {
	return s.ipc.setProperty("mute", muted)
}

func (s *mpvSession) Position() (float64, error) {
	return s.ipc.getFloat("time-pos")
}

func (s *mpvSession) Muted() (bool, error) {
	return s.ipc.getBool("mute")
}

// Destroy tears the session down: no events after return, safe to call
// multiple times and on half-initialized sessions. Teardown errors are
// swallowed.
func (s *mpvSession) Destroy() {
	s.emitMu.Lock()
	alreadyDestroyed := s.destroyed
	s.destroyed = true
	s.emitMu.Unlock()

	if alreadyDestroyed {
		return
	}

	if s.ipc != nil {
		s.ipc.close()
	}
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
		_, _ = s.cmd.Process.Wait()
	}
	_ = os.Remove(s.socketPath)
}

// emit delivers one event unless the session has been destroyed. The read
// lock is held across the sink call so Destroy cannot return mid-delivery.
func (s *mpvSession) emit(ev Event) {
	s.emitMu.RLock()
	defer s.emitMu.RUnlock()
	if s.destroyed || s.sink == nil {
		return
	}
	ev.Handle = s.handle
	s.sink(ev)
}

// onIPCEvent translates mpv's native events onto the closed event set.
// Called from the IPC reader goroutine.
func (s *mpvSession) onIPCEvent(msg ipcMessage) {
	switch msg.Event {
	case "file-loaded":
		// Fetch duration off the reader goroutine; a synchronous
		// request here would deadlock against the response reader.
		go func() {
			duration, err := s.ipc.getFloat("duration")
			if err != nil {
				slog.Debug("could not read video duration", "handle", s.handle, "error", err)
			}
			s.stateMu.Lock()
			s.loaded = true
			s.duration = duration
			s.stateMu.Unlock()
			s.emit(Event{Kind: EventReady, Duration: duration})
		}()

	case "property-change":
		if msg.Name != "pause" {
			return
		}
		var paused bool
		if err := json.Unmarshal(msg.Data, &paused); err != nil {
			return
		}
		s.stateMu.Lock()
		loaded := s.loaded
		s.paused = paused
		duration := s.duration
		s.stateMu.Unlock()
		if !loaded {
			// Startup flicker before the file is in: not a user
			// visible transition.
			return
		}
		if paused {
			s.emit(Event{Kind: EventPaused})
		} else {
			s.emit(Event{Kind: EventPlaying, Duration: duration})
		}

	case "playback-restart":
		// Fires on unpause and after seeks; only meaningful as a
		// "playing" signal when not paused.
		s.stateMu.Lock()
		loaded, paused, duration := s.loaded, s.paused, s.duration
		s.stateMu.Unlock()
		if loaded && !paused {
			s.emit(Event{Kind: EventPlaying, Duration: duration})
		}

	case "end-file":
		switch msg.Reason {
		case "eof":
			s.emit(Event{Kind: EventEnded})
		case "error":
			s.emit(Event{Kind: EventError, Code: ClassifyError(msg.FileError)})
		default:
			// "stop"/"quit" arrive from our own teardown, not from
			// playback.
		}
	}
}

func clampVolume(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}
