package utils

import "os"

// PathExists reports whether a store file (or any other path) is already on
// disk, so the CLI can tell opening from creating.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
