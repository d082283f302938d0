package platform

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// OpenCommand returns the command line that opens dir in the file browser
// of goos.
func OpenCommand(goos, dir string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{dir}
	case "windows":
		// The empty argument is the window title consumed by start.
		return "cmd", []string{"/c", "start", "", dir}
	default:
		return "xdg-open", []string{dir}
	}
}

// OpenDir opens dir in the file browser of the running OS. It returns once
// the opener has been started.
func OpenDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	name, args := OpenCommand(runtime.GOOS, dir)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
