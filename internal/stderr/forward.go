package stderr

import (
	"bufio"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// forward logs each non-empty line read from r until EOF.
func forward(r io.Reader, log logrus.FieldLogger) {
	entry := log.WithField("source", "stderr")
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			entry.Warn(line)
		}
	}
}
