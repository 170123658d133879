package launch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// rateLimitSignatures are log fragments the game emits when the session
// services start throttling it. Worth surfacing because the player
// otherwise sees nothing but a hung multiplayer screen.
var rateLimitSignatures = []string{
	"TooManyRequestsException",
	"Server responded with 429",
	"Connection throttled! Please wait before reconnecting",
}

// Process is one running game instance. In attached mode it owns the
// child's output streams and cleans the scratch natives directory up when
// the game exits; in detached mode it is only a record of the spawn.
type Process struct {
	cmd        *exec.Cmd
	logger     hclog.Logger
	nativesDir string
	detached   bool

	done    chan struct{}
	waitErr error
}

func startProcess(executable string, args []string, dir string, detached bool, nativesDir string, logger hclog.Logger) (*Process, error) {
	cmd := exec.Command(executable, args...)
	cmd.Dir = dir

	p := &Process{
		cmd:        cmd,
		logger:     logger,
		nativesDir: nativesDir,
		detached:   detached,
		done:       make(chan struct{}),
	}

	if detached {
		detachSysProcAttr(cmd)
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("starting game process: %w", err)
		}
		logger.Info("game process started detached", "pid", cmd.Process.Pid)
		logger.Debug("scratch natives directory outlives a detached launch", "dir", nativesDir)
		_ = cmd.Process.Release()
		close(p.done)
		return p, nil
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("attaching to game stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("attaching to game stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting game process: %w", err)
	}
	logger.Info("game process started", "pid", cmd.Process.Pid)

	var streams sync.WaitGroup
	streams.Add(2)
	go p.observe(stdout, "stdout", &streams)
	go p.observe(stderr, "stderr", &streams)
	go p.reap(&streams)
	return p, nil
}

// observe relays one output stream line by line and watches for throttle
// signatures.
func (p *Process) observe(stream io.Reader, name string, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		p.logger.Debug("game output", "stream", name, "line", line)
		if isRateLimitLine(line) {
			p.logger.Warn("game reports session-service rate limiting", "line", line)
		}
	}
}

func isRateLimitLine(line string) bool {
	for _, sig := range rateLimitSignatures {
		if strings.Contains(line, sig) {
			return true
		}
	}
	return false
}

// reap waits for the child, records its outcome, and removes the scratch
// natives directory. Cleanup is best-effort; a failure only logs.
func (p *Process) reap(streams *sync.WaitGroup) {
	streams.Wait()
	err := p.cmd.Wait()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		p.logger.Info("game exited", "code", 0)
	case errors.As(err, &exitErr):
		p.logger.Info("game exited", "code", exitErr.ExitCode())
		p.waitErr = err
	default:
		p.logger.Error("game process wait failed", "error", err)
		p.waitErr = err
	}

	removeDir(p.nativesDir, p.logger)
	close(p.done)
}

// PID returns the child's process ID.
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// Detached reports whether the launcher relinquished the child at spawn.
func (p *Process) Detached() bool {
	return p.detached
}

// Wait blocks until the game exits and returns its wait error, nil on a
// zero exit. Detached processes return immediately.
func (p *Process) Wait() error {
	<-p.done
	return p.waitErr
}
