package reservation

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Definition is one restaurant parsed from a bulk-load source.
type Definition struct {
	Name       string
	TableCount int
}

// MaxLineLength caps a single bulk-load record. Longer lines are skipped.
const MaxLineLength = 64 * 1024

// ParseRestaurants reads "name,tableCount" records, one per line. Fields are
// trimmed and blank lines ignored. Malformed records are returned as skipped
// lines rather than errors. A read error stops parsing; the definitions read
// so far are returned alongside it.
func ParseRestaurants(r io.Reader) ([]Definition, []SkippedLine, error) {
	var (
		defs    []Definition
		skipped []SkippedLine
	)

	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		text, tooLong, err := readLine(br)
		if err != nil && err != io.EOF {
			return defs, skipped, err
		}
		if err == io.EOF && text == "" && !tooLong {
			return defs, skipped, nil
		}
		if n == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}

		switch {
		case tooLong:
			skipped = append(skipped, SkippedLine{Line: n, Text: text, Reason: "line too long"})
		case strings.TrimSpace(text) == "":
		default:
			if d, reason := parseDefinition(text); reason != "" {
				skipped = append(skipped, SkippedLine{Line: n, Text: text, Reason: reason})
			} else {
				defs = append(defs, d)
			}
		}

		if err == io.EOF {
			return defs, skipped, nil
		}
	}
}

func parseDefinition(text string) (Definition, string) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return Definition{}, "expected exactly two fields"
	}
	count, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Definition{}, "table count is not an integer"
	}
	if count < 0 {
		return Definition{}, "table count is negative"
	}
	return Definition{Name: strings.TrimSpace(parts[0]), TableCount: count}, ""
}

// readLine returns the next line without its line ending. A line longer than
// MaxLineLength is consumed in full but only its first MaxLineLength bytes are
// returned, with tooLong set. err is io.EOF on the last line.
func readLine(br *bufio.Reader) (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, isPrefix, rerr := br.ReadLine()
		if rerr != nil {
			return string(buf), tooLong, rerr
		}
		if room := MaxLineLength - len(buf); len(chunk) > room {
			buf = append(buf, chunk[:room]...)
			tooLong = true
		} else {
			buf = append(buf, chunk...)
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// LoadRestaurants adds every valid record from r. Invalid records are logged
// and reported but never stop the load. Only a read failure returns an error,
// and it wraps ErrLoadFailed; records read before the failure stay applied.
func (m *Manager) LoadRestaurants(r io.Reader, source string) (LoadReport, error) {
	defs, skipped, err := ParseRestaurants(r)

	report := LoadReport{Source: source, Skipped: skipped}
	for _, d := range defs {
		m.AddRestaurant(d.Name, d.TableCount)
		report.Added++
	}
	for _, s := range skipped {
		m.log.WithFields(logrus.Fields{"source": source, "line": s.Line}).
			Warnf("invalid line format: %q (%s)", s.Text, s.Reason)
	}

	if err != nil {
		m.log.WithError(err).WithField("source", source).Error("load restaurants")
		return report, fmt.Errorf("%w: read %s: %w", ErrLoadFailed, source, err)
	}
	m.log.WithFields(logrus.Fields{
		"source":  source,
		"added":   report.Added,
		"skipped": len(report.Skipped),
	}).Info("restaurants loaded")
	return report, nil
}

// LoadRestaurantsFromFile loads restaurants from the file at path. A missing
// or unreadable file returns an error wrapping ErrLoadFailed; deciding whether
// that ends the process is left to the caller.
func (m *Manager) LoadRestaurantsFromFile(path string) (LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		m.log.WithError(err).WithField("source", path).Error("load restaurants")
		return LoadReport{Source: path}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	defer f.Close()

	return m.LoadRestaurants(f, path)
}
