// =================================
// File: internal/earnings/ingest.go
// =================================
package earnings

import (
	"bufio"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// SummaryHeader is the header line of an aggregated earnings export.
const SummaryHeader = "GameName,TotalEarnings"

// layout gives the column positions of one input format.
type layout struct {
	money, game, min int
}

var (
	// tournament rows: name, money, game, ...
	tournamentLayout = layout{money: 1, game: 2, min: 3}
	// aggregated rows: game, total
	summaryLayout = layout{money: 1, game: 0, min: 2}
)

const maxLineSize = 1024 * 1024

// Stats summarizes a single import
type Stats struct {
	Lines    int // data lines seen, header and blank lines excluded
	Accepted int
	Skipped  int
}

// Ingestor parses tournament CSV exports into per-game totals.
type Ingestor struct {
	logger *zap.Logger
}

// NewIngestor creates a new ingestor
func NewIngestor(logger *zap.Logger) *Ingestor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingestor{logger: logger.Named("ingest")}
}

// LoadFile reads and parses the CSV file at path.
// Open and read failures are returned as *IOError.
func (in *Ingestor) LoadFile(path string) (*Map, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	m, stats, err := in.Parse(f)
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = path
		}
		return nil, stats, err
	}

	in.logger.Info("Earnings file imported",
		zap.String("path", path),
		zap.Int("games", m.Len()),
		zap.Int("accepted", stats.Accepted),
		zap.Int("skipped", stats.Skipped))

	return m, stats, nil
}

// ParseString parses CSV text held in memory.
func (in *Ingestor) ParseString(text string) (*Map, Stats) {
	m, stats, _ := in.Parse(strings.NewReader(text))
	return m, stats
}

// Parse reads CSV rows from r. The first line is a header and is ignored,
// except that SummaryHeader switches to the two column aggregated layout.
// Malformed rows are skipped; only read failures produce an error.
func (in *Ingestor) Parse(r io.Reader) (*Map, Stats, error) {
	m := NewMap()
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	cols := tournamentLayout
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			if strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff")) == SummaryHeader {
				cols = summaryLayout
			}
			continue
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		stats.Lines++

		name, amount, err := parseRow(cols, lineNo, line)
		if err != nil {
			stats.Skipped++
			in.logger.Debug("Row skipped", zap.Error(err))
			continue
		}

		m.Add(name, amount)
		stats.Accepted++
	}

	if err := scanner.Err(); err != nil {
		return nil, stats, &IOError{Op: "read", Err: err}
	}

	return m, stats, nil
}

func parseRow(cols layout, lineNo int, line string) (string, float64, error) {
	fields := SplitFields(line)
	if len(fields) < cols.min {
		return "", 0, &ParseError{Line: lineNo, Err: ErrTooFewFields}
	}

	amount, err := ParseAmount(fields[cols.money])
	if err != nil {
		return "", 0, &ParseError{Line: lineNo, Field: "TotalMoney", Err: err}
	}

	name := CleanName(fields[cols.game])
	if name == "" {
		return "", 0, &ParseError{Line: lineNo, Field: "GameName", Err: ErrEmptyName}
	}

	return name, amount, nil
}

// SplitFields splits a line on commas that are not inside a quoted field.
// A comma is a delimiter only when an even number of quote characters
// precede it on the line. Quotes are kept in the returned fields.
func SplitFields(line string) []string {
	var fields []string
	quotes := 0
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			quotes++
		case ',':
			if quotes%2 == 0 {
				fields = append(fields, line[start:i])
				start = i + 1
			}
		}
	}
	return append(fields, line[start:])
}

// ParseAmount parses a money column.
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// CleanName trims a game name and strips one surrounding quote on each side.
func CleanName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return s
}
