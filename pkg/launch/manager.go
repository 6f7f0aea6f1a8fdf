// Package launch spawns the game as a child process and streams its
// output to the controller as ordered events. The manager owns the
// child handle for its whole lifetime: it spawns, drains both output
// streams concurrently, waits for termination, and emits the terminal
// exit event before returning.
package launch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FrogdreamStudios/launcher/pkg/compat"
	"github.com/FrogdreamStudios/launcher/pkg/game"
	"github.com/FrogdreamStudios/launcher/pkg/mojang"
	"github.com/FrogdreamStudios/launcher/pkg/protocol"
)

// offlineToken is the dummy auth token offline launches pass.
const offlineToken = "null"

// stderrPrefix marks log events that originate from the child's stderr.
const stderrPrefix = "[STDERR] "

// Config controls runtime selection and stream handling.
type Config struct {
	// AltJavaPath is a fixed path checked for an x86_64 runtime when
	// emulation is required. Empty disables the check.
	AltJavaPath string

	// RosettaWrapper is the emulation invocation prepended when no
	// alternate runtime exists ("arch -x86_64" on macOS).
	RosettaWrapper []string

	// JavaPath is the default runtime binary.
	JavaPath string

	// JoinTimeout bounds the wait for stream copying and the drainers
	// after the child exits, so a blocked stream cannot hang the
	// manager.
	JoinTimeout time.Duration
}

// DefaultConfig returns the standard runtime selection settings.
func DefaultConfig() Config {
	return Config{
		AltJavaPath:    "/Library/Java/JavaVirtualMachines/zulu-17-x64.jdk/Contents/Home/bin/java",
		RosettaWrapper: []string{"arch", "-x86_64"},
		JavaPath:       "java",
		JoinTimeout:    5 * time.Second,
	}
}

// Manager spawns and supervises one game process per Launch call.
type Manager struct {
	resolver *compat.Resolver
	cfg      Config
	emitter  *protocol.Emitter
	log      *slog.Logger
}

// NewManager builds a manager emitting events through em.
func NewManager(resolver *compat.Resolver, cfg Config, em *protocol.Emitter, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{resolver: resolver, cfg: cfg, emitter: em, log: log}
}

// Launch starts a version and streams its output until it exits.
// Returns the child's exit code. A spawn failure emits exactly one
// error event and returns a non-zero code with the cause; after a
// successful spawn the event sequence is one launch_result, the
// interleaved log events, and one exit.
func (m *Manager) Launch(ctx context.Context, username, versionID, root, gameDir string) (int, error) {
	desc, err := mojang.LoadDescriptor(root, versionID)
	if err != nil {
		m.emitter.Emit(protocol.NewError(fmt.Sprintf("load install descriptor: %v", err)))
		return 1, err
	}

	profile := m.resolver.Resolve(versionID)
	argv, err := m.buildArgv(desc, profile, username, versionID, root, gameDir)
	if err != nil {
		m.emitter.Emit(protocol.NewError(fmt.Sprintf("build launch command: %v", err)))
		return 1, err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = gameDir
	// Own process group: if the controller kills this process, the game
	// is orphaned cleanly instead of receiving our signals.
	setProcessGroup(cmd)

	// Wait must not race the drainers: os/exec closes StdoutPipe and
	// StderrPipe the moment the process exits, dropping whatever is
	// still buffered. Feeding io.Pipe writers instead makes Wait block
	// until both streams are copied out in full, bounded by WaitDelay.
	outR, outW := io.Pipe()
	errR, errW := io.Pipe()
	cmd.Stdout = outW
	cmd.Stderr = errW
	cmd.WaitDelay = m.cfg.JoinTimeout

	if err := cmd.Start(); err != nil {
		m.emitter.Emit(protocol.NewError(fmt.Sprintf("spawn game process: %v", err)))
		return 1, err
	}

	pid := cmd.Process.Pid
	m.log.Info("game process started", "pid", pid, "version", versionID)
	m.emitter.Emit(protocol.NewLaunchResult(true, pid, "Minecraft started"))

	var wg sync.WaitGroup
	wg.Add(2)
	go m.drain(&wg, outR, pid, "")
	go m.drain(&wg, errR, pid, stderrPrefix)

	exitCode := 0
	if err := cmd.Wait(); err != nil {
		if cmd.ProcessState != nil {
			exitCode = cmd.ProcessState.ExitCode()
		} else {
			exitCode = 1
		}
	}
	outW.Close()
	errW.Close()

	m.joinDrainers(&wg, pid)
	m.emitter.Emit(protocol.NewExit(pid, exitCode, "Minecraft exited"))
	m.log.Info("game process exited", "pid", pid, "code", exitCode)
	return exitCode, nil
}

// buildArgv resolves the runtime binary, assembles the java command and
// wraps it for emulation when required.
func (m *Manager) buildArgv(desc *mojang.Descriptor, profile compat.Profile, username, versionID, root, gameDir string) ([]string, error) {
	javaPath := m.cfg.JavaPath
	wrap := false
	if profile.NeedsRosetta {
		if m.cfg.AltJavaPath != "" && fileExists(m.cfg.AltJavaPath) {
			// An x86_64 runtime on disk beats wrapping the arm64 one.
			javaPath = m.cfg.AltJavaPath
		} else {
			wrap = true
		}
	}

	argv, err := game.BuildCommand(desc, game.Options{
		Username:  username,
		UUID:      uuid.NewString(),
		Token:     offlineToken,
		VersionID: versionID,
		Root:      root,
		GameDir:   gameDir,
		JavaPath:  javaPath,
		Profile:   profile,
	})
	if err != nil {
		return nil, err
	}

	if wrap && len(m.cfg.RosettaWrapper) > 0 {
		argv = append(append([]string{}, m.cfg.RosettaWrapper...), argv...)
	}
	return argv, nil
}

// drain forwards one stream line-by-line as log events. Stream read
// failures are logged and end only this drainer; the sibling stream and
// exit reporting continue.
func (m *Manager) drain(wg *sync.WaitGroup, r io.Reader, pid int, prefix string) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		m.emitter.Emit(protocol.NewLogLine(prefix+scanner.Text(), pid))
	}
	if err := scanner.Err(); err != nil {
		m.log.Warn("stream read failed", "pid", pid, "error", err)
	}
}

// joinDrainers waits for both drainers with a bounded timeout.
func (m *Manager) joinDrainers(wg *sync.WaitGroup, pid int) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(m.cfg.JoinTimeout):
		m.log.Warn("stream drainers did not finish in time", "pid", pid)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
