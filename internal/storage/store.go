package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Label     string    `json:"label,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Intensity float64   `json:"intensity"`
	Angles    []float64 `json:"angles,omitempty"`
	Samples   int       `json:"samples"`
	Final     float64   `json:"final_intensity"`
}

// Save writes one run as a directory holding metadata.json and a
// two-column data.csv (angle_deg, intensity). For chain runs the
// first column carries the cumulative stage angle.
func (s *Store) Save(meta RunMetadata, angles, intensities []float64) (string, error) {
	if len(angles) != len(intensities) {
		return "", fmt.Errorf("angle/intensity length mismatch: %d vs %d", len(angles), len(intensities))
	}

	runID := fmt.Sprintf("%s_%d", meta.Kind, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Samples = len(intensities)
	if len(intensities) > 0 {
		meta.Final = intensities[len(intensities)-1]
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "data.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"angle_deg", "intensity"}); err != nil {
		return "", err
	}

	for i := range angles {
		row := []string{
			strconv.FormatFloat(angles[i], 'f', 6, 64),
			strconv.FormatFloat(intensities[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadCurve(runID string) (angles, intensities []float64, err error) {
	csvPath := filepath.Join(s.baseDir, runID, "data.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	angles = make([]float64, 0, len(records)-1)
	intensities = make([]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}

		angle, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		intensity, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}

		angles = append(angles, angle)
		intensities = append(intensities, intensity)
	}

	return angles, intensities, nil
}

// DataPath exposes the raw CSV location for export.
func (s *Store) DataPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "data.csv")
}
