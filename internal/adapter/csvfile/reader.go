package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/couchcryptid/grow-sensor-map/internal/domain"
)

const utf8BOM = "\ufeff"

// Reader parses delimited text files into domain tables.
// It implements pipeline.TableReader.
type Reader struct {
	comma    rune
	progress io.Writer
	logger   *slog.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithDelimiter sets the field separator. The default is a comma.
func WithDelimiter(comma rune) Option {
	return func(r *Reader) { r.comma = comma }
}

// WithProgress draws a byte progress bar on w while the file is read.
func WithProgress(w io.Writer) Option {
	return func(r *Reader) { r.progress = w }
}

// NewReader creates a CSV reader.
func NewReader(logger *slog.Logger, opts ...Option) *Reader {
	r := &Reader{comma: ',', logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadTable reads the header and every data row of path. Failures are
// returned as *domain.LoadError. An empty file yields an empty table.
func (r *Reader) ReadTable(ctx context.Context, path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, &domain.LoadError{Path: path, Cause: err}
	}
	defer f.Close()

	var src io.Reader = f
	if r.progress != nil {
		bar := r.newProgressBar(f, path)
		defer bar.Finish() //nolint:errcheck // cosmetic
		src = io.TeeReader(f, bar)
	}

	table, err := decode(ctx, path, src, r.comma)
	if err != nil {
		return domain.Table{}, err
	}
	r.logger.Debug("csv parsed", "path", path, "columns", len(table.Header), "rows", len(table.Rows))
	return table, nil
}

// decode parses src as a headed CSV. Rows shorter than the header are kept
// (the absent cells read as missing); longer rows are malformed.
func decode(ctx context.Context, path string, src io.Reader, comma rune) (domain.Table, error) {
	cr := csv.NewReader(src)
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	table := domain.Table{Path: path}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return table, nil
	}
	if err != nil {
		return domain.Table{}, parseError(path, err)
	}
	table.Header = normalizeHeader(header)

	for {
		if err := ctx.Err(); err != nil {
			return domain.Table{}, &domain.LoadError{Path: path, Cause: err}
		}

		values, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Table{}, parseError(path, err)
		}

		line, _ := cr.FieldPos(0)
		if len(values) > len(table.Header) {
			return domain.Table{}, &domain.LoadError{
				Path:  path,
				Line:  line,
				Cause: fmt.Errorf("expected %d fields, saw %d", len(table.Header), len(values)),
			}
		}
		table.Rows = append(table.Rows, domain.Row{Line: line, Values: values})
	}

	return table, nil
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func parseError(path string, err error) *domain.LoadError {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &domain.LoadError{Path: path, Line: pe.Line, Cause: pe.Err}
	}
	return &domain.LoadError{Path: path, Cause: err}
}

func (r *Reader) newProgressBar(f *os.File, path string) *progressbar.ProgressBar {
	size := int64(-1)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(r.progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]reading[reset] %s", filepath.Base(path))),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(r.progress)
		}),
	)
}
