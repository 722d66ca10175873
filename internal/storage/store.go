package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/shellgrid/internal/grid"
	"github.com/san-kum/shellgrid/internal/monitoring"
)

var (
	ErrUnknownVariable = errors.New("storage: unknown variable")
	ErrCorrupt         = errors.New("storage: corrupt snapshot")
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

type VariableMeta struct {
	Name   string   `json:"name"`
	Slot   int      `json:"slot"`
	Shapes [][2]int `json:"shapes"`
	Sum    float64  `json:"sum"`
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Mode      string             `json:"mode"`
	Rank      int                `json:"rank"`
	Ranks     int                `json:"ranks"`
	Step      int                `json:"step"`
	Dt        float64            `json:"dt"`
	DonorMax  float64            `json:"donor_max"`
	Timestamp time.Time          `json:"timestamp"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	Variables []VariableMeta     `json:"variables"`
}

// Variable returns the metadata of the named variable.
func (m *RunMetadata) Variable(name string) (*VariableMeta, error) {
	for i := range m.Variables {
		if m.Variables[i].Name == name {
			return &m.Variables[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownVariable, name)
}

// Save writes metadata.json and one csv file per variable. names[v] is the
// name of slot v. Fields of meta describing the grid are filled in here.
func (s *Store) Save(meta RunMetadata, g *grid.Grid, names []string) (string, error) {
	if len(names) != g.Variables() {
		return "", fmt.Errorf("storage: %d names for %d variables", len(names), g.Variables())
	}

	meta.Timestamp = time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Name, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.Variables = make([]VariableMeta, len(names))
	for v, name := range names {
		vm, err := describe(g, v, name)
		if err != nil {
			return "", err
		}
		meta.Variables[v] = vm

		if err := writeVariable(filepath.Join(runDir, name+".csv"), g, v, vm.Shapes); err != nil {
			return "", fmt.Errorf("write %s: %w", name, err)
		}
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	monitoring.Logf("storage: saved %s (%d variables)", meta.ID, len(names))
	return meta.ID, nil
}

func describe(g *grid.Grid, v int, name string) (VariableMeta, error) {
	vm := VariableMeta{Name: name, Slot: v}
	shells, err := g.Shells(v)
	if err != nil {
		return vm, err
	}
	vm.Shapes = make([][2]int, shells)
	for i := range vm.Shapes {
		rows, depth, err := g.ShapeAt(v, i)
		if err != nil {
			return vm, err
		}
		vm.Shapes[i] = [2]int{rows, depth}
	}
	if vm.Sum, err = g.Sum(v); err != nil {
		return vm, err
	}
	if vm.Min, err = g.Min(v); err != nil {
		return vm, err
	}
	if vm.Max, err = g.Max(v); err != nil {
		return vm, err
	}
	return vm, nil
}

var linePool = grid.NewLinePool()

func writeVariable(path string, g *grid.Grid, v int, shapes [][2]int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"shell", "row", "values"}); err != nil {
		return err
	}

	for i, shape := range shapes {
		for j := 0; j < shape[0]; j++ {
			line, err := linePool.Line(g, v, i, j)
			if err != nil {
				return err
			}
			row := make([]string, 0, len(line)+2)
			row = append(row, strconv.Itoa(i), strconv.Itoa(j))
			for _, x := range line {
				row = append(row, strconv.FormatFloat(x, 'g', -1, 64))
			}
			linePool.Put(line)
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// ExportJSON writes the metadata of runID to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
