// Package output writes the artifacts of one processed document: the full
// JSON record, the smaller tables-only JSON for table consumers, and the
// rendered figure images in a per-document directory referenced from the
// record by relative path.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jiarana/normadoc/model"
)

// Writer persists document records under an output directory tree:
// records/<base>.json, tables/<base>_tablas.json, and
// figures/<base>/<id>.<format>.
type Writer struct {
	RecordsDir string
	TablesDir  string
	FiguresDir string
}

// New creates a Writer rooted at outputDir and ensures its subdirectories
// exist.
func New(outputDir string) (*Writer, error) {
	w := &Writer{
		RecordsDir: filepath.Join(outputDir, "normas"),
		TablesDir:  filepath.Join(outputDir, "tablas"),
		FiguresDir: filepath.Join(outputDir, "figuras"),
	}
	for _, dir := range []string{w.RecordsDir, w.TablesDir, w.FiguresDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	return w, nil
}

// Write persists everything belonging to one record under the given base
// name and returns the path of the main JSON artifact. Figure files are
// written first so the record's relative paths are valid by the time the
// record exists.
func (w *Writer) Write(base string, record *model.DocumentRecord) (string, error) {
	if err := w.writeFigures(base, record); err != nil {
		return "", err
	}

	mainPath := filepath.Join(w.RecordsDir, base+".json")
	if err := writeJSON(mainPath, record); err != nil {
		return "", err
	}

	if len(record.Tables) > 0 {
		tablesPath := filepath.Join(w.TablesDir, base+"_tablas.json")
		if err := writeJSON(tablesPath, record.TablesOnly()); err != nil {
			return "", err
		}
	}

	return mainPath, nil
}

// writeFigures writes each rendered figure and rewrites its File field to
// the path relative to the records directory.
func (w *Writer) writeFigures(base string, record *model.DocumentRecord) error {
	if len(record.Figures) == 0 {
		return nil
	}

	dir := filepath.Join(w.FiguresDir, base)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating figures directory %s: %w", dir, err)
	}

	for i := range record.Figures {
		fig := &record.Figures[i]
		name := fig.ID + "." + fig.Format
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, fig.Data, 0644); err != nil {
			return fmt.Errorf("writing figure %s: %w", path, err)
		}
		rel, err := filepath.Rel(w.RecordsDir, path)
		if err != nil {
			rel = path
		}
		fig.File = rel
	}
	return nil
}

// writeJSON marshals v with indentation and writes it to path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
