package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"

	"patrimonio/internal/ingest"
	"patrimonio/internal/model"
	"patrimonio/internal/storage"
)

// resolveFormat picks the statement format from an explicit flag value or,
// when set to auto, from the file extension.
func resolveFormat(format, path string) (string, error) {
	switch format {
	case "csv", "ofx":
		return format, nil
	case "auto", "":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			return "csv", nil
		case ".ofx", ".qfx":
			return "ofx", nil
		default:
			return "", fmt.Errorf("cannot infer format from %q: use --format csv|ofx", path)
		}
	default:
		return "", fmt.Errorf("unknown format %q: use csv, ofx or auto", format)
	}
}

// loadTransactions reads and parses a statement file, showing byte progress
// for large uploads.
func loadTransactions(path, format string) ([]model.Transaction, error) {
	format, err := resolveFormat(format, path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	bar := progressbar.DefaultBytes(info.Size(), "reading "+filepath.Base(path))
	reader := io.TeeReader(file, bar)

	switch format {
	case "ofx":
		return ingest.ParseOFX(reader)
	default:
		return ingest.ParseCSV(reader)
	}
}

// openStore opens the credential database at the configured path.
func openStore() (*storage.SQLiteStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".config", "patrimonio", "patrimonio.db")
	}

	return storage.NewSQLiteStore(dbPath)
}
