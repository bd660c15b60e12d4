//go:build !unix

package archive

// Lock is a no-op on platforms without flock
type Lock struct{}

// AcquireLock returns immediately on platforms without flock
func AcquireLock(dir string) (*Lock, error) {
	return &Lock{}, nil
}

// Release is a no-op
func (l *Lock) Release() error {
	return nil
}
