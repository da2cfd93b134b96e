package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ExtensionPrefix prefixes the executables run for unknown subcommands.
const ExtensionPrefix = "tj-"

// RunExtension runs the tj-<name> executable from the PATH with args, and the
// resolved configuration in its TJ_* environment.
//
// found is false when no such executable exists, code is its exit code.
func RunExtension(name string, args []string) (found bool, code int) {
	bin := ExtensionPrefix + name
	path, err := exec.LookPath(bin)
	if err != nil {
		log.Debug().Err(err).Str("extension", bin).Msg("no extension")
		return false, 0
	}

	ext := exec.Command(path, args...)
	ext.Stdin, ext.Stdout, ext.Stderr = os.Stdin, os.Stdout, os.Stderr
	ext.Env = append(os.Environ(), config.Environ()...)
	err = ext.Run()

	var exit *exec.ExitError
	switch {
	case err == nil:
		return true, 0
	case errors.As(err, &exit):
		return true, exit.ExitCode()
	default:
		fmt.Fprintf(os.Stderr, "Error running %s: %v\n", bin, err)
		return true, 1
	}
}
