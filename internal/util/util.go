package util

import (
	"fmt"

	"github.com/google/uuid"
)

// FormatSize formats a size in bytes to a human-readable string
func FormatSize(size int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	unitIndex := 0
	floatSize := float64(size)

	for floatSize >= 1024 && unitIndex < len(units)-1 {
		floatSize /= 1024
		unitIndex++
	}

	if unitIndex == 0 {
		return fmt.Sprintf("%d %s", size, units[unitIndex])
	}

	return fmt.Sprintf("%.2f %s", floatSize, units[unitIndex])
}

// IsUUID checks if a string is a canonical 36-character UUID.
// Used to tell project ids apart from project names on the command line.
func IsUUID(str string) bool {
	if len(str) != 36 {
		return false
	}
	_, err := uuid.Parse(str)
	return err == nil
}
