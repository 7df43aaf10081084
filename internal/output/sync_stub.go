//go:build !linux

package output

// syncDir is a no-op where directories cannot be fsynced portably.
func syncDir(dir string) error {
	return nil
}
