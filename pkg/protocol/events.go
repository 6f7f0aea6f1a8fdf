// Package protocol defines the line-delimited JSON messages the
// launcher core emits to its controller, and the single-writer emitter
// that serializes them.
//
// The controller observes this process only through stdout and the
// exit code. Order is the contract: exactly one launch_result (or one
// error) precedes any log events, and exactly one exit event ends a
// successfully spawned sequence. Consumers must not assume any array
// framing, only one JSON object per line.
package protocol

// Event is one structured message in the controller-facing stream.
// Concrete event types below all carry a "type" discriminator.
type Event interface {
	eventType() string
}

// LaunchResult reports the outcome of spawning the game process. It is
// emitted exactly once, before any log events, and only on a
// successful spawn.
type LaunchResult struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	PID     int    `json:"pid"`
	Message string `json:"message"`
}

func (LaunchResult) eventType() string { return "launch_result" }

// LogLine carries one line from the game's stdout or stderr. Lines
// from stderr are prefixed to mark their origin.
type LogLine struct {
	Type string `json:"type"`
	Line string `json:"line"`
	PID  int    `json:"pid"`
}

func (LogLine) eventType() string { return "log" }

// Exit reports the game's termination and ends the event sequence.
type Exit struct {
	Type     string `json:"type"`
	PID      int    `json:"pid"`
	ExitCode int    `json:"exit_code"`
	Message  string `json:"message"`
}

func (Exit) eventType() string { return "exit" }

// ErrorEvent reports a spawn failure. When emitted it replaces the
// launch_result/exit pair entirely.
type ErrorEvent struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (ErrorEvent) eventType() string { return "error" }

// NewLaunchResult builds a launch_result event.
func NewLaunchResult(success bool, pid int, message string) LaunchResult {
	return LaunchResult{Type: "launch_result", Success: success, PID: pid, Message: message}
}

// NewLogLine builds a log event.
func NewLogLine(line string, pid int) LogLine {
	return LogLine{Type: "log", Line: line, PID: pid}
}

// NewExit builds an exit event.
func NewExit(pid, exitCode int, message string) Exit {
	return Exit{Type: "exit", PID: pid, ExitCode: exitCode, Message: message}
}

// NewError builds an error event. Success is always false.
func NewError(message string) ErrorEvent {
	return ErrorEvent{Type: "error", Success: false, Message: message}
}

// Result is the terminal object simple commands print: {"success":true}
// on success, {"success":false,"error":...} on failure. Launch-style
// results additionally carry the child PID and a message.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	PID     *int   `json:"pid,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK is the plain success result.
func OK() Result { return Result{Success: true} }

// Failure wraps an error into the terminal failure shape.
func Failure(err error) Result {
	return Result{Success: false, Error: err.Error()}
}
