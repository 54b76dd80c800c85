package cruio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crutrack/RoomTracker/pkg/model"
)

// ScheduleFileName is the name of the timetable export inside each
// department directory (matched case-insensitively).
const ScheduleFileName = "edt.cru"

// LoadFile reads and parses one CRU file.
func LoadFile(path string) (*model.SlotSet, []Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	set, diags := Parse(string(data))
	return set, diags, nil
}

// LoadDatabase walks the subdirectories of baseDir, parses every schedule
// file it finds and merges the slots into one set.
func LoadDatabase(baseDir string) (*model.SlotSet, []Diagnostic, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading database directory %s: %w", baseDir, err)
	}

	set := model.EmptySlotSet()
	var diags []Diagnostic

	for _, dir := range entries {
		if !dir.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(baseDir, dir.Name()))
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.EqualFold(f.Name(), ScheduleFileName) {
				continue
			}
			sub, d, err := LoadFile(filepath.Join(baseDir, dir.Name(), f.Name()))
			if err != nil {
				return nil, nil, err
			}
			set.AddAll(sub)
			diags = append(diags, d...)
		}
	}

	return set, diags, nil
}
