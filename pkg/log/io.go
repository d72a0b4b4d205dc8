package log

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// IOLogger wraps the stdio transport streams and logs every line that crosses
// them, for debugging the JSON-RPC conversation.
type IOLogger struct {
	reader io.Reader
	writer io.Writer
	logger *log.Logger
}

// NewIOLogger creates a logger that wraps input and output streams.
func NewIOLogger(r io.Reader, w io.Writer, logger *log.Logger) *IOLogger {
	return &IOLogger{
		reader: r,
		writer: w,
		logger: logger,
	}
}

// Read logs the data read from the underlying reader.
func (l *IOLogger) Read(p []byte) (n int, err error) {
	if l.reader == nil {
		return 0, io.EOF
	}
	n, err = l.reader.Read(p)
	if n > 0 {
		l.logger.Infof("[stdin]: received %d bytes: %s", n, string(p[:n]))
	}
	return n, err
}

// Write logs the data written to the underlying writer.
func (l *IOLogger) Write(p []byte) (n int, err error) {
	if l.writer == nil {
		return 0, io.ErrClosedPipe
	}
	l.logger.Infof("[stdout]: sending %d bytes: %s", len(p), string(p))
	return l.writer.Write(p)
}
