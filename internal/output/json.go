package output

import (
	"bufio"
	"io"

	"github.com/goccy/go-json"

	"github.com/inodb/inhmode/internal/inheritance"
	"github.com/inodb/inhmode/internal/record"
)

// JSONWriter writes one classification result object per line.
type JSONWriter struct {
	w         *bufio.Writer
	enc       *json.Encoder
	withTitle bool
}

// jsonResult is a Result with the variant title attached.
type jsonResult struct {
	Title string `json:"title"`
	*inheritance.Result
}

// NewJSONWriter creates a JSON Lines writer. With withTitle set, each object
// also carries the variant's display title.
func NewJSONWriter(w io.Writer, withTitle bool) *JSONWriter {
	bw := bufio.NewWriter(w)
	return &JSONWriter{
		w:         bw,
		enc:       json.NewEncoder(bw),
		withTitle: withTitle,
	}
}

// WriteHeader is a no-op; JSON Lines has no header.
func (jw *JSONWriter) WriteHeader() error {
	return nil
}

// Write writes a single result.
func (jw *JSONWriter) Write(rec *record.Record, res *inheritance.Result) error {
	if jw.withTitle {
		return jw.enc.Encode(jsonResult{Title: rec.Title(), Result: res})
	}
	return jw.enc.Encode(res)
}

// Flush flushes any buffered data to the underlying writer.
func (jw *JSONWriter) Flush() error {
	return jw.w.Flush()
}
