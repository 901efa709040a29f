package record

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// Parser reads records from a JSON array file (as cached from a portal
// search) or from JSON Lines. Gzipped input is detected automatically.
type Parser struct {
	reader       *bufio.Reader
	file         *os.File
	gzipReader   *gzip.Reader
	dec          *json.Decoder
	array        bool
	started      bool
	done         bool
	err          error
	recordNumber int
}

// NewParser creates a parser for the given file. Use "-" for stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open record file: %w", err)
	}

	p, err := NewParserFromReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	p.file = file
	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader) (*Parser, error) {
	br := bufio.NewReader(r)
	p := &Parser{}

	// Check for gzip magic number (0x1f, 0x8b)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		br = bufio.NewReader(p.gzipReader)
	}
	p.reader = br

	return p, nil
}

// start detects whether the input is a JSON array or a record stream.
func (p *Parser) start() error {
	p.started = true
	for {
		b, err := p.reader.Peek(1)
		if err == io.EOF {
			p.done = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("read records: %w", err)
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			p.reader.ReadByte()
			continue
		case '[':
			p.array = true
		case '{':
		default:
			return &ParseError{Record: 1, Message: fmt.Sprintf("expected '[' or '{', found %q", b[0])}
		}
		break
	}

	p.dec = json.NewDecoder(p.reader)
	if p.array {
		if _, err := p.dec.Token(); err != nil {
			return &ParseError{Record: 1, Message: "read array start", Err: err}
		}
	}
	return nil
}

// Next reads the next record.
// Returns nil, nil when there are no more records.
func (p *Parser) Next() (*Record, error) {
	if p.err != nil {
		return nil, p.err
	}
	if !p.started {
		if err := p.start(); err != nil {
			p.err = err
			return nil, err
		}
	}
	if p.done {
		return nil, nil
	}

	if p.array && !p.dec.More() {
		p.done = true
		return nil, nil
	}

	var rec Record
	if err := p.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) && !p.array {
			p.done = true
			return nil, nil
		}
		p.err = &ParseError{Record: p.recordNumber + 1, Message: "decode record", Err: err}
		return nil, p.err
	}
	p.recordNumber++
	return &rec, nil
}

// RecordNumber returns the number of records read so far.
func (p *Parser) RecordNumber() int {
	return p.recordNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ReadAll reads every record from a file.
func ReadAll(path string) ([]*Record, error) {
	p, err := NewParser(path)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	var recs []*Record
	for {
		rec, err := p.Next()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return recs, nil
		}
		recs = append(recs, rec)
	}
}

// ParseError represents an error while reading records with record context.
type ParseError struct {
	Record  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record parse error at record %d: %s: %v", e.Record, e.Message, e.Err)
	}
	return fmt.Sprintf("record parse error at record %d: %s", e.Record, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
