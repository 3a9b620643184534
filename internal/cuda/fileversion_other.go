//go:build !windows

package cuda

import "fmt"

// readFileVersion is unreachable in practice on non-Windows hosts because
// the compatibility gate rejects them first, but the resolver stays
// constructible everywhere for tests.
func readFileVersion(path string) (string, error) {
	return "", fmt.Errorf("version metadata of %s is only readable on windows", path)
}
