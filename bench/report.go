package bench

import (
	"fmt"
	"io"
	"strconv"

	"github.com/zeebo/bencode"
	"gopkg.in/yaml.v3"
)

// Report formats.
const (
	FormatText    = "text"
	FormatYAML    = "yaml"
	FormatBencode = "bencode"
)

// NameWidth is the width of the name column in text reports.
const NameWidth = 20

// ErrUnknownFormat is returned by NewReporter for an unsupported format.
var ErrUnknownFormat = fmt.Errorf("unknown report format, supported: %s, %s, %s",
	FormatText, FormatYAML, FormatBencode)

// Reporter receives results in registry order.
type Reporter interface {
	// Add records one result. Text reporters write it immediately.
	Add(Result) error
	// Flush writes everything not yet written.
	Flush() error
}

// NewReporter creates a Reporter writing format into w.
// Empty format means FormatText.
func NewReporter(w io.Writer, format string) (Reporter, error) {
	switch format {
	case FormatText, "":
		return &textReporter{w: w}, nil
	case FormatYAML:
		return &docReporter{w: w, encode: encodeYAML}, nil
	case FormatBencode:
		return &docReporter{w: w, encode: encodeBencode}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FormatLine renders r as one text report line.
func FormatLine(r Result) string {
	return fmt.Sprintf("%-*.*s%f MB/s\n", NameWidth, NameWidth, r.Name, r.Rate())
}

type textReporter struct {
	w io.Writer
}

func (t *textReporter) Add(r Result) error {
	_, err := io.WriteString(t.w, FormatLine(r))
	return err
}

func (*textReporter) Flush() error {
	return nil
}

type record struct {
	Index  int     `yaml:"index"`
	Name   string  `yaml:"name"`
	Words  uint64  `yaml:"best_words"`
	Window string  `yaml:"window"`
	Rate   float64 `yaml:"rate_mbps"`
}

type docReporter struct {
	w       io.Writer
	records []record
	encode  func(io.Writer, []record) error
}

func (d *docReporter) Add(r Result) error {
	d.records = append(d.records, record{
		Index:  r.Index,
		Name:   r.Name,
		Words:  r.Best,
		Window: r.Window.String(),
		Rate:   r.Rate(),
	})
	return nil
}

func (d *docReporter) Flush() error {
	err := d.encode(d.w, d.records)
	d.records = d.records[:0]
	return err
}

func encodeYAML(w io.Writer, records []record) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(map[string]any{"results": records}); err != nil {
		return err
	}
	return enc.Close()
}

// bencode has no floating point type, so the rate is written as a decimal
// string.
func encodeBencode(w io.Writer, records []record) error {
	list := make([]any, 0, len(records))
	for _, r := range records {
		list = append(list, map[string]any{
			"index":      int64(r.Index),
			"name":       r.Name,
			"best_words": int64(r.Words),
			"window":     r.Window,
			"rate_mbps":  strconv.FormatFloat(r.Rate, 'f', 6, 64),
		})
	}
	return bencode.NewEncoder(w).Encode(map[string]any{"results": list})
}
