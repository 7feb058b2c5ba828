package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/niche/config"
)

// SuccessionRecord is one succession event as written to successions.csv.
type SuccessionRecord struct {
	Tick        int64  `csv:"tick"`
	Trigger     string `csv:"trigger"`
	FromLineage string `csv:"from"`
	ToLineage   string `csv:"to"`
	Population  int    `csv:"population"`
	Senescent   int    `csv:"senescent"`
}

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir            string
	telemetryFile  *os.File
	successionFile *os.File

	// Track if headers have been written
	telemetryHeaderWritten  bool
	successionHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	telemetryPath := filepath.Join(dir, "telemetry.csv")
	f, err := os.Create(telemetryPath)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.telemetryFile = f

	successionPath := filepath.Join(dir, "successions.csv")
	f, err = os.Create(successionPath)
	if err != nil {
		om.telemetryFile.Close()
		return nil, fmt.Errorf("creating successions.csv: %w", err)
	}
	om.successionFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.telemetryHeaderWritten {
		if err := gocsv.Marshal(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		om.telemetryHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}

	return nil
}

// WriteSuccession writes a succession event to successions.csv.
func (om *OutputManager) WriteSuccession(rec SuccessionRecord) error {
	if om == nil {
		return nil
	}

	records := []SuccessionRecord{rec}

	if !om.successionHeaderWritten {
		if err := gocsv.Marshal(records, om.successionFile); err != nil {
			return fmt.Errorf("writing succession: %w", err)
		}
		om.successionHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.successionFile); err != nil {
			return fmt.Errorf("writing succession: %w", err)
		}
	}

	return nil
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	if err := om.telemetryFile.Close(); err != nil {
		firstErr = err
	}
	if err := om.successionFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
