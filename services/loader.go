package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"genz-dashboard/models"
	"genz-dashboard/utils"
)

// Delimiter is the field separator of every source file.
const Delimiter = ';'

var (
	// ErrLoad marks a source that could not be turned into a table. It is the
	// only error class that aborts the pipeline.
	ErrLoad = errors.New("load failed")
	// ErrEmptyTable is wrapped into ErrLoad when a file has no header row.
	ErrEmptyTable = errors.New("empty table")
	// ErrDelimiter is wrapped into ErrLoad when the header does not split on
	// the expected delimiter.
	ErrDelimiter = errors.New("delimiter mismatch")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SourcePaths names the three input files.
type SourcePaths struct {
	Profile  string
	Literacy string
	Regional string
}

// Sources are the three raw tables of one load.
type Sources struct {
	Profile  models.RawTable
	Literacy models.RawTable
	Regional models.RawTable
}

// Loader reads delimited source files and remembers each table by path, so
// repeated loads of the same file return the table read the first time.
type Loader struct {
	logger *utils.Logger

	mu    sync.Mutex
	cache map[string]models.RawTable
}

// NewLoader creates a Loader with an empty cache.
func NewLoader(logger *utils.Logger) *Loader {
	return &Loader{
		logger: logger,
		cache:  make(map[string]models.RawTable),
	}
}

// Load returns the table stored at path. Files that are not valid UTF-8 are
// decoded as ISO-8859-1. Missing or unreadable files fail with ErrLoad.
func (l *Loader) Load(path string) (models.RawTable, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.cache[path]; ok {
		l.logger.Debug("[loader] Cache hit: %s", path)
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("loader: read %q: %w: %w", path, ErrLoad, err)
	}

	t, err := l.parse(path, data)
	if err != nil {
		return models.RawTable{}, err
	}

	l.cache[path] = t
	l.logger.Info("[loader] Loaded %s: %d columns, %d rows", path, len(t.Headers), len(t.Rows))
	return t, nil
}

// LoadAll loads the profile, literacy and regional sources in that order.
func (l *Loader) LoadAll(paths SourcePaths) (Sources, error) {
	var (
		src Sources
		err error
	)
	if src.Profile, err = l.Load(paths.Profile); err != nil {
		return Sources{}, err
	}
	if src.Literacy, err = l.Load(paths.Literacy); err != nil {
		return Sources{}, err
	}
	if src.Regional, err = l.Load(paths.Regional); err != nil {
		return Sources{}, err
	}
	return src, nil
}

func (l *Loader) parse(path string, data []byte) (models.RawTable, error) {
	text, err := l.decode(path, data)
	if err != nil {
		return models.RawTable{}, err
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = Delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if errors.Is(err, io.EOF) {
		return models.RawTable{}, fmt.Errorf("loader: %q: %w: %w", path, ErrLoad, ErrEmptyTable)
	}
	if err != nil {
		return models.RawTable{}, fmt.Errorf("loader: parse header of %q: %w: %w", path, ErrLoad, err)
	}
	if len(headers) < 2 {
		return models.RawTable{}, fmt.Errorf("loader: %q has a single column: %w: %w", path, ErrLoad, ErrDelimiter)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.RawTable{}, fmt.Errorf("loader: parse %q: %w: %w", path, ErrLoad, err)
		}
		if isBlankRecord(rec) {
			continue
		}
		rows = append(rows, rec)
	}

	return models.RawTable{Path: path, Headers: headers, Rows: rows}, nil
}

// decode returns data as UTF-8, falling back to ISO-8859-1 when the bytes are
// not valid UTF-8.
func (l *Loader) decode(path string, data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return bytes.TrimPrefix(data, utf8BOM), nil
	}

	l.logger.Debug("[loader] %s is not valid UTF-8, decoding as ISO-8859-1", path)
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("loader: decode %q: %w: %w", path, ErrLoad, err)
	}
	return out, nil
}

func isBlankRecord(rec []string) bool {
	for _, c := range rec {
		if c != "" {
			return false
		}
	}
	return true
}
