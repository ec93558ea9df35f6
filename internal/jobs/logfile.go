package jobs

import (
	"os"
)

// Job status files are plain append-only text, one line per event. They are
// job output, not service logging, so they bypass the zap logger.
func appendLines(path string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, line := range lines {
		if _, err := f.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

func appendLine(path, line string) error {
	return appendLines(path, []string{line})
}
