package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		path    string
		want    string
		wantErr bool
	}{
		{name: "explicit csv", format: "csv", path: "data.ofx", want: "csv"},
		{name: "explicit ofx", format: "ofx", path: "data.csv", want: "ofx"},
		{name: "auto csv", format: "auto", path: "data.csv", want: "csv"},
		{name: "auto ofx", format: "auto", path: "data.ofx", want: "ofx"},
		{name: "auto qfx", format: "auto", path: "export.QFX", want: "ofx"},
		{name: "auto uppercase", format: "auto", path: "DATA.CSV", want: "csv"},
		{name: "empty is auto", format: "", path: "data.csv", want: "csv"},
		{name: "auto unknown extension", format: "auto", path: "data.xlsx", wantErr: true},
		{name: "unknown format", format: "tsv", path: "data.csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormat(tt.format, tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadTransactions_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.csv")
	content := "Data,Instituição,Valor\n01/01/2024,Banco A,100\n01/02/2024,Banco A,120\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	transactions, err := loadTransactions(path, "auto")
	require.NoError(t, err)
	assert.Len(t, transactions, 2)
}

func TestLoadTransactions_MissingFile(t *testing.T) {
	_, err := loadTransactions(filepath.Join(t.TempDir(), "nope.csv"), "csv")
	assert.Error(t, err)
}
