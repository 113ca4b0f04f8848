package utils

import (
	"fmt"
	"os"
)

const bytesPerMB = 1_048_576

// FormatMB renders a byte count the way the log lines show file sizes.
func FormatMB(size int64) string {
	return fmt.Sprintf("%.1f MB", float64(size)/bytesPerMB)
}

func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
