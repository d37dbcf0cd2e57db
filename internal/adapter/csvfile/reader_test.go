package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/grow-sensor-map/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReader_ReadTable(t *testing.T) {
	path := writeFile(t, "GrowLocations.csv",
		"Serial,Latitude,Longitude,Type\n"+
			"S1,-1.5,52.0,soil\n"+
			"\n"+
			"S2,-2.25,53.5,\"air, outdoor\"\n")

	table, err := NewReader(discardLogger()).ReadTable(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, table.Path)
	assert.Equal(t, []string{"Serial", "Latitude", "Longitude", "Type"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, domain.Row{Line: 2, Values: []string{"S1", "-1.5", "52.0", "soil"}}, table.Rows[0])
	assert.Equal(t, 4, table.Rows[1].Line, "blank lines still count toward line numbers")
	assert.Equal(t, "air, outdoor", table.Rows[1].Values[3])
}

func TestReader_HeaderNormalization(t *testing.T) {
	path := writeFile(t, "bom.csv", "\ufeffLatitude , Longitude\n-1,52\n")

	table, err := NewReader(discardLogger()).ReadTable(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Latitude", "Longitude"}, table.Header)
}

func TestReader_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")

	table, err := NewReader(discardLogger()).ReadTable(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, table.Header)
	assert.Empty(t, table.Rows)
}

func TestReader_HeaderOnly(t *testing.T) {
	path := writeFile(t, "header.csv", "Latitude,Longitude\n")

	table, err := NewReader(discardLogger()).ReadTable(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Latitude", "Longitude"}, table.Header)
	assert.Empty(t, table.Rows)
}

func TestReader_ShortRowKept(t *testing.T) {
	path := writeFile(t, "short.csv", "Serial,Latitude,Longitude\nS1,-1.5\n")

	table, err := NewReader(discardLogger()).ReadTable(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"S1", "-1.5"}, table.Rows[0].Values)
}

func TestReader_LongRowRejected(t *testing.T) {
	path := writeFile(t, "long.csv", "Latitude,Longitude\n-1,52\n-1,52,extra\n")

	_, err := NewReader(discardLogger()).ReadTable(context.Background(), path)
	require.Error(t, err)

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 3, loadErr.Line)
	assert.Contains(t, err.Error(), "expected 2 fields, saw 3")
}

func TestReader_MalformedQuoting(t *testing.T) {
	path := writeFile(t, "quote.csv", "Latitude,Longitude\n-1,52\n-1,5\"2\n")

	_, err := NewReader(discardLogger()).ReadTable(context.Background(), path)
	require.Error(t, err)

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 3, loadErr.Line)
	assert.ErrorIs(t, err, csv.ErrBareQuote)
}

func TestReader_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")

	table, err := NewReader(discardLogger()).ReadTable(context.Background(), path)
	require.Error(t, err)
	assert.Empty(t, table.Rows)

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, path, loadErr.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReader_Delimiter(t *testing.T) {
	path := writeFile(t, "semi.csv", "Latitude;Longitude\n-1,5;52,0\n")

	table, err := NewReader(discardLogger(), WithDelimiter(';')).ReadTable(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Latitude", "Longitude"}, table.Header)
	assert.Equal(t, []string{"-1,5", "52,0"}, table.Rows[0].Values)
}

func TestReader_CancelledContext(t *testing.T) {
	path := writeFile(t, "rows.csv", "Latitude,Longitude\n-1,52\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReader(discardLogger()).ReadTable(ctx, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReader_Progress(t *testing.T) {
	path := writeFile(t, "GrowLocations.csv", "Latitude,Longitude\n-1,52\n-2,53\n")

	var buf bytes.Buffer
	table, err := NewReader(discardLogger(), WithProgress(&buf)).ReadTable(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
	assert.Contains(t, buf.String(), "reading")
}
