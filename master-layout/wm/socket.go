package wm

import (
	"os"

	"go.i3wm.org/i3/v4"
)

var (
	defaultSocketPath = i3.SocketPathHook
	defaultIsRunning  = i3.IsRunningHook
)

// socketEnv lists the variables i3 and sway export with their IPC socket.
// I3SOCK wins when both are set.
var socketEnv = []string{"I3SOCK", "SWAYSOCK"}

func envSocket() string {
	for _, name := range socketEnv {
		if p := os.Getenv(name); p != "" {
			return p
		}
	}
	return ""
}

// SocketPath resolves the IPC socket from the environment and falls back to
// asking the i3 binary, which sway does not ship.
func SocketPath() (string, error) {
	if p := envSocket(); p != "" {
		return p, nil
	}
	return defaultSocketPath()
}

func isRunning() bool {
	if p := envSocket(); p != "" {
		_, err := os.Stat(p)
		return err == nil
	}
	return defaultIsRunning()
}

// Configure points go-i3 at the socket found by SocketPath. It must run
// before the first IPC call.
func Configure() {
	i3.SocketPathHook = SocketPath
	i3.IsRunningHook = isRunning
}
