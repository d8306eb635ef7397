package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/log"
	"github.com/spf13/viper"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV implements LocalBackend using mpv's JSON-IPC protocol.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	listener   *EventListener
	onEnd      func()
	mu         sync.Mutex // Protects socket writes
}

// NewMPV creates a new mpv backend instance (does not start playback).
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
	}
}

// SetOnEnd registers the end-of-track callback. Only one slot exists;
// setting it replaces the previous callback.
func (m *MPV) SetOnEnd(fn func()) {
	m.onEnd = fn
}

// Play starts playback of the given file path. If mpv is already running,
// it loads the new file into the existing instance via IPC.
func (m *MPV) Play(path string, title string) error {
	safeTarget, err := sanitizeMediaTarget(path)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}
	safeTitle := sanitizeTitle(title)

	if m.IsRunning() {
		if _, err := m.sendCommand([]interface{}{"loadfile", safeTarget, "replace"}); err != nil {
			return fmt.Errorf("load file: %w", err)
		}
		return m.Set("force-media-title", safeTitle)
	}

	// Generate a random socket path using os.TempDir() for cross-platform support
	// (macOS $TMPDIR is /var/folders/... not /tmp/)
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("melodia-%x.sock", randomBytes))
	}

	// Audio-only invocation. Do NOT pass --profile or audio device flags,
	// respect the user's mpv.conf.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--no-video",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", safeTitle),
		fmt.Sprintf("--volume=%d", ClampVolume(viper.GetInt(key.PlayerVolume))),
		"--idle=yes",
		safeTarget,
	}

	binary := viper.GetString(key.Player)
	if binary == "" {
		binary = "mpv"
	}

	m.cmd = exec.Command(binary, args...)

	// Detach from parent process group to prevent cascading shell panics.
	m.cmd.SysProcAttr = sysProcAttr()

	// Disable standard pipes to prevent resource leaks.
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s not found in PATH", ErrBackendUnavailable, binary)
		}
		return fmt.Errorf("start %s: %w", binary, err)
	}

	// Background goroutine to reap the process and prevent zombies
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	// Wait for the IPC socket to become available
	if err := m.waitForSocket(); err != nil {
		// If socket never became ready, kill the orphaned process
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
				// Already exited
			default:
				log.Warnf("killing %s: socket never became ready", binary)
				_ = m.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return m.startEventListener()
}

// startEventListener subscribes to property events and routes eof-reached
// into the registered end-of-track callback.
func (m *MPV) startEventListener() error {
	if m.listener != nil {
		return nil
	}

	m.listener = NewEventListener(m.socketPath, func(property string, data interface{}) {
		if property != "eof-reached" {
			return
		}
		if reached, ok := data.(bool); ok && reached && m.onEnd != nil {
			m.onEnd()
		}
	})

	return m.listener.Start()
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		// Check if process already exited
		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Position returns the current playback position in seconds, 0 when unknown.
func (m *MPV) Position() float64 {
	pos, err := m.getFloatProperty("time-pos")
	if err != nil {
		return 0
	}
	return pos
}

// Duration returns the total duration of the current media in seconds, 0 when unknown.
func (m *MPV) Duration() float64 {
	dur, err := m.getFloatProperty("duration")
	if err != nil {
		return 0
	}
	return dur
}

// Paused returns whether playback is currently paused.
func (m *MPV) Paused() (bool, error) {
	data, err := m.sendCommand([]interface{}{"get_property", "pause"})
	if err != nil {
		return false, err
	}
	paused, ok := data.(bool)
	if !ok {
		return false, nil
	}
	return paused, nil
}

// SetPaused suspends or resumes playback. A stopped engine is a no-op.
func (m *MPV) SetPaused(paused bool) error {
	if !m.IsRunning() {
		return nil
	}
	return m.Set("pause", paused)
}

// Stop halts playback and unloads the current file. A stopped engine is a no-op.
func (m *MPV) Stop() error {
	if !m.IsRunning() {
		return nil
	}
	_, err := m.sendCommand([]interface{}{"stop"})
	return err
}

// SetVolume sets the playback volume, clamping to 0-100.
func (m *MPV) SetVolume(percent int) error {
	if !m.IsRunning() {
		return nil
	}
	return m.Set("volume", ClampVolume(percent))
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	// Fast check: process already exited?
	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	if m.listener != nil {
		m.listener.Stop()
		m.listener = nil
	}

	if m.socketPath == "" {
		return nil
	}

	// Try graceful quit via IPC
	_, _ = m.sendCommand([]interface{}{"quit"})

	// Wait for process to exit (with timeout)
	select {
	case <-m.exited:
		// Clean exit
	case <-time.After(3 * time.Second):
		// Force kill if graceful quit didn't work
		_ = killProcess(m.cmd)
	}

	// Clean up the socket file
	_ = os.Remove(m.socketPath)

	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// Set a property
func (m *MPV) Set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// getFloatProperty is a helper to retrieve a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget validates that a playback target is safe to pass to mpv.
// Prevents flag injection from untrusted playlist documents.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty target")
	}

	// Reject control characters
	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in target")
	}

	// Prevent flag injection: targets must not start with -
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("target must not start with '-' (looks like a flag)")
	}

	// If it contains "://", validate as URL
	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	// Treat as local file path
	return filepath.Clean(l), nil
}

// sanitizeTitle cleans up the title for mpv
func sanitizeTitle(title string) string {
	t := strings.ReplaceAll(title, "\n", " ")
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	// Remove null bytes
	t = strings.ReplaceAll(t, "\x00", "")
	return strings.TrimSpace(t)
}
