package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/GiftPack/internal/model"
)

// ArchiveVersion is written into every archive and backup file.
const ArchiveVersion = "1.0.0"

// ErrMissingVersion is returned when an archive has no version field.
var ErrMissingVersion = errors.New("missing version field")

// ResultArchive stores the final answer of a run together with the problem
// it answers. It carries no search state.
type ResultArchive struct {
	Version   string               `json:"version"`
	CreatedAt string               `json:"created_at"`
	Input     string               `json:"input,omitempty"`
	Settings  model.SolverSettings `json:"settings"`
	Presents  []model.Present      `json:"presents"`
	Result    model.SolveResult    `json:"result"`
}

// SaveResult writes a result archive to path.
func SaveResult(path, input string, problem model.Problem, settings model.SolverSettings, result model.SolveResult) error {
	archive := ResultArchive{
		Version:   ArchiveVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Input:     input,
		Settings:  settings,
		Presents:  problem.Presents,
		Result:    result,
	}
	if err := writeJSON(path, archive); err != nil {
		return fmt.Errorf("failed to write result archive: %w", err)
	}
	return nil
}

// LoadResult reads a result archive written by SaveResult.
func LoadResult(path string) (ResultArchive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ResultArchive{}, fmt.Errorf("failed to read result archive: %w", err)
	}
	var archive ResultArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		return ResultArchive{}, fmt.Errorf("failed to parse result archive: %w", err)
	}
	if archive.Version == "" {
		return ResultArchive{}, fmt.Errorf("invalid result archive: %w", ErrMissingVersion)
	}
	return archive, nil
}

// BackupData is the top-level structure for import/export of all
// application data.
type BackupData struct {
	Version   string             `json:"version"`
	CreatedAt string             `json:"created_at"`
	Config    model.AppConfig    `json:"config"`
	Catalogs  model.CatalogStore `json:"catalogs"`
}

// ExportAllData writes the config and the catalog store to a single file.
func ExportAllData(exportPath string, config model.AppConfig, catalogs model.CatalogStore) error {
	backup := BackupData{
		Version:   ArchiveVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Catalogs:  catalogs,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup file. The caller applies the imported data.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: %w", ErrMissingVersion)
	}
	normalizeConfig(&backup.Config)
	if backup.Catalogs.Catalogs == nil {
		backup.Catalogs.Catalogs = []model.Catalog{}
	}
	return backup, nil
}
