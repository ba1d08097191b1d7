// package formatter reads and writes the CSV files exchanged with a harvest: the catalog of
// songs to harvest and the per-genre database of harvested progressions
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/desertthunder/chordex/internal/models"
	"github.com/desertthunder/chordex/internal/shared"
)

var (
	catalogHeaders  = []string{"artist", "song_name", "key", "mode"}
	databaseHeaders = []string{"song_name", "artist", "key", "mode", "progression"}
)

// CatalogFilename returns the path of the catalog file for genre: spotify_songs_{genre}.csv
func CatalogFilename(dir, genre string) string {
	return filepath.Join(dir, fmt.Sprintf("spotify_songs_%s.csv", genre))
}

// DatabaseFilename returns the path of the harvested database for genre: {genre}_database.csv
func DatabaseFilename(dir, genre string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_database.csv", genre))
}

// ExportCatalogCSV converts catalog songs to CSV with columns: artist, song_name, key, mode
func ExportCatalogCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(catalogHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			song.Artist,
			song.Title,
			strconv.Itoa(song.Key),
			strconv.Itoa(song.Mode),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteCatalog replaces the catalog file for genre in dir and returns its path.
func WriteCatalog(dir, genre string, songs []models.Song) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := ExportCatalogCSV(songs)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	path := CatalogFilename(dir, genre)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}
	return path, nil
}

// readRecords reads a CSV with a header row and returns each row keyed by column name.
// Missing required columns are an error.
func readRecords(r io.Reader, required []string) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	for _, col := range required {
		if !slices.Contains(header, col) {
			return nil, fmt.Errorf("%w: missing column %q", shared.ErrInvalidInput, col)
		}
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadCatalog parses a catalog CSV. Column order is taken from the header row.
func ReadCatalog(r io.Reader, genre string) ([]models.Song, error) {
	rows, err := readRecords(r, catalogHeaders)
	if err != nil {
		return nil, err
	}

	songs := make([]models.Song, 0, len(rows))
	for i, row := range rows {
		key, err := strconv.Atoi(strings.TrimSpace(row["key"]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: key %q", shared.ErrInvalidInput, i+2, row["key"])
		}
		mode, err := strconv.Atoi(strings.TrimSpace(row["mode"]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: mode %q", shared.ErrInvalidInput, i+2, row["mode"])
		}

		songs = append(songs, models.Song{
			Title:  row["song_name"],
			Artist: row["artist"],
			Key:    key,
			Mode:   mode,
			Genre:  genre,
		})
	}
	return songs, nil
}

// ReadCatalogFile opens and parses the catalog file at path.
func ReadCatalogFile(path, genre string) ([]models.Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return ReadCatalog(f, genre)
}

// DatabaseRecord renders a harvested song as a database CSV row.
// The progression column holds the progressions as a JSON array of arrays.
func DatabaseRecord(song *models.PersistedSong) ([]string, error) {
	progressions := song.Analysis().Progressions
	if progressions == nil {
		progressions = [][]string{}
	}
	data, err := shared.MarshalJSON(progressions, false)
	if err != nil {
		return nil, err
	}

	s := song.Song()
	return []string{s.Title, s.Artist, strconv.Itoa(s.Key), strconv.Itoa(s.Mode), string(data)}, nil
}

// AppendDatabase appends one harvested song to the genre database in dir, writing the header
// first when the file is new or empty. Returns the file path.
func AppendDatabase(dir string, song *models.PersistedSong) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	record, err := DatabaseRecord(song)
	if err != nil {
		return "", err
	}

	path := DatabaseFilename(dir, song.Song().Genre)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open database file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat database file: %w", err)
	}

	writer := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := writer.Write(databaseHeaders); err != nil {
			return "", fmt.Errorf("failed to write CSV headers: %w", err)
		}
	}
	if err := writer.Write(record); err != nil {
		return "", fmt.Errorf("failed to write CSV record: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("CSV writer error: %w", err)
	}
	return path, nil
}

// DatabaseRow is one harvested song read back from a database CSV.
type DatabaseRow struct {
	Song         models.Song
	Progressions [][]string
}

// ReadDatabase parses a database CSV written by [AppendDatabase].
func ReadDatabase(r io.Reader, genre string) ([]DatabaseRow, error) {
	rows, err := readRecords(r, databaseHeaders)
	if err != nil {
		return nil, err
	}

	out := make([]DatabaseRow, 0, len(rows))
	for i, row := range rows {
		key, err := strconv.Atoi(strings.TrimSpace(row["key"]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: key %q", shared.ErrInvalidInput, i+2, row["key"])
		}
		mode, err := strconv.Atoi(strings.TrimSpace(row["mode"]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: mode %q", shared.ErrInvalidInput, i+2, row["mode"])
		}

		var progressions [][]string
		if err := json.Unmarshal([]byte(row["progression"]), &progressions); err != nil {
			return nil, fmt.Errorf("%w: row %d: progression: %v", shared.ErrInvalidInput, i+2, err)
		}

		out = append(out, DatabaseRow{
			Song:         models.Song{Title: row["song_name"], Artist: row["artist"], Key: key, Mode: mode, Genre: genre},
			Progressions: progressions,
		})
	}
	return out, nil
}

// ExistingSongs returns the normalized keys of every song in the genre database in dir.
// A missing file yields an empty set.
func ExistingSongs(dir, genre string) (map[string]bool, error) {
	existing := make(map[string]bool)

	f, err := os.Open(DatabaseFilename(dir, genre))
	if errors.Is(err, os.ErrNotExist) {
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database file: %w", err)
	}
	defer f.Close()

	rows, err := ReadDatabase(f, genre)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		existing[shared.NormalizeSongKey(row.Song.Title, row.Song.Artist)] = true
	}
	return existing, nil
}

// ExportToText lists harvested songs with their progressions, one song per block
func ExportToText(songs []*models.PersistedSong) []byte {
	var buf bytes.Buffer

	for i, song := range songs {
		s := song.Song()
		a := song.Analysis()
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s, key %d, mode %d, capo %d]\n",
			song.Sequence(), s.Artist, s.Title, s.Genre, s.Key, s.Mode, song.Capo()))
		buf.WriteString(fmt.Sprintf("   %d progressions (%d pass the repetition check)\n", len(a.Progressions), a.Valid()))
		for _, p := range a.Progressions {
			buf.WriteString("   " + strings.Join(p, " - ") + "\n")
		}
		if i < len(songs)-1 {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes()
}
