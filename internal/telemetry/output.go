package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"fireworksgl/internal/config"
)

// OutputManager writes per-window frame statistics to frames.csv.
type OutputManager struct {
	dir       string
	runID     string
	perfFile  *os.File
	headerOut bool
}

// NewOutputManager creates the output directory and opens frames.csv.
// Returns nil if dir is empty (output disabled); a nil manager is safe to use.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	return &OutputManager{dir: dir, runID: uuid.NewString(), perfFile: f}, nil
}

// RunID identifies this run in every record.
func (om *OutputManager) RunID() string {
	if om == nil {
		return ""
	}
	return om.runID
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves the effective configuration next to the CSV.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WritePerf appends one window record to frames.csv.
func (om *OutputManager) WritePerf(stats PerfStats, pop Population) error {
	if om == nil {
		return nil
	}
	records := []PerfStatsCSV{stats.ToCSV(om.runID, pop)}

	if !om.headerOut {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing frames.csv: %w", err)
		}
		om.headerOut = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
		return fmt.Errorf("writing frames.csv: %w", err)
	}
	return nil
}

// Close closes the CSV file.
func (om *OutputManager) Close() error {
	if om == nil || om.perfFile == nil {
		return nil
	}
	err := om.perfFile.Close()
	om.perfFile = nil
	return err
}
