package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/eahenle/spudsim/internal/cannon"
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
	ID        string                    `json:"id"`
	Label     string                    `json:"label"`
	Timestamp time.Time                 `json:"timestamp"`
	Params    cannon.PhysicalParameters `json:"params"`
	Options   cannon.Options            `json:"options"`
	Summary   cannon.Summary            `json:"summary"`
	Metrics   map[string]float64        `json:"metrics"`
}

// Save writes one run as a directory holding metadata.json and
// trajectory.csv, and returns the generated run ID.
func (s *Store) Save(label string, res *cannon.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", label, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Label:     label,
		Timestamp: time.Now(),
		Params:    res.Params,
		Options:   res.Options,
		Summary:   res.Summary,
		Metrics:   res.Metrics,
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

	csvPath := filepath.Join(runDir, "trajectory.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "position", "velocity", "energy", "entropy"}); err != nil {
		return "", err
	}

	for i, sample := range res.Trajectory {
		row := []string{
			strconv.FormatFloat(sample.T, 'g', 12, 64),
			strconv.FormatFloat(sample.X, 'g', 12, 64),
			strconv.FormatFloat(sample.V, 'g', 12, 64),
		}

		if i < len(res.Energy) {
			row = append(row, strconv.FormatFloat(res.Energy[i], 'g', 12, 64))
		} else {
			row = append(row, "0")
		}
		if i < len(res.Entropy) {
			row = append(row, strconv.FormatFloat(res.Entropy[i], 'g', 12, 64))
		} else {
			row = append(row, "0")
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

// LoadSeries reads trajectory.csv back as the trajectory plus the aligned
// energy and entropy series.
func (s *Store) LoadSeries(runID string) (cannon.Trajectory, []float64, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "trajectory.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 2 {
		return cannon.Trajectory{}, []float64{}, []float64{}, nil
	}

	tr := make(cannon.Trajectory, 0, len(records)-1)
	energy := make([]float64, 0, len(records)-1)
	entropy := make([]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 5 {
			continue
		}

		vals := make([]float64, 5)
		ok := true
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		tr = append(tr, cannon.Sample{T: vals[0], X: vals[1], V: vals[2]})
		energy = append(energy, vals[3])
		entropy = append(entropy, vals[4])
	}

	return tr, energy, entropy, nil
}
