// Package opener hands a generated deep link to the operating system so the
// external app can pick it up. This is a side-effecting collaborator gated by
// configuration; the core pipeline never calls it on its own.
package opener

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open launches the platform URL handler for the given link.
func Open(rawURL string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return fmt.Errorf("auto-open is not supported on %s", runtime.GOOS)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open URL: %w", err)
	}
	return nil
}
