//go:build windows

package cuda

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// readFileVersion extracts the fixed file version from a DLL's VERSIONINFO
// resource, formatted as "major.minor.patch.build".
func readFileVersion(path string) (string, error) {
	size, err := windows.GetFileVersionInfoSize(path, nil)
	if err != nil {
		return "", fmt.Errorf("no version resource in %s: %w", path, err)
	}
	data := make([]byte, size)
	if err := windows.GetFileVersionInfo(path, 0, size, unsafe.Pointer(&data[0])); err != nil {
		return "", fmt.Errorf("reading version resource of %s: %w", path, err)
	}

	var fixed *windows.VS_FIXEDFILEINFO
	var fixedLen uint32
	if err := windows.VerQueryValue(unsafe.Pointer(&data[0]), `\`, unsafe.Pointer(&fixed), &fixedLen); err != nil {
		return "", fmt.Errorf("querying fixed version info of %s: %w", path, err)
	}
	if fixedLen == 0 || fixed == nil {
		return "", fmt.Errorf("version resource of %s has no fixed info block", path)
	}

	return fmt.Sprintf("%d.%d.%d.%d",
		fixed.FileVersionMS>>16, fixed.FileVersionMS&0xffff,
		fixed.FileVersionLS>>16, fixed.FileVersionLS&0xffff), nil
}
