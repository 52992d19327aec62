package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/duehelper/due-helper/internal/domain"
)

// Snapshot is the persisted shape of the full task state. Field names
// match the JSON files written by every prior release, so old data
// files keep loading.
type Snapshot struct {
	Categories []domain.Category `json:"category"`
	Tasks      []domain.Task     `json:"taskList"`
}

// EncodeSnapshot serializes the snapshot for a backend.
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// DecodeSnapshot parses a snapshot, upgrading legacy formats on the
// way in: early releases stored categories as bare name strings (and
// the category inside each task as a bare string). Those upgrade to
// {catName, color} with the fixed default color, so a decode is always
// current-format afterwards.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var raw struct {
		Category []json.RawMessage `json:"category"`
		TaskList []taskRecord      `json:"taskList"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	snap := &Snapshot{
		Categories: make([]domain.Category, 0, len(raw.Category)),
		Tasks:      make([]domain.Task, 0, len(raw.TaskList)),
	}

	for _, rawCat := range raw.Category {
		cat, err := decodeCategory(rawCat)
		if err != nil {
			return nil, fmt.Errorf("parse category: %w", err)
		}
		snap.Categories = append(snap.Categories, cat)
	}

	for _, rec := range raw.TaskList {
		cat, err := decodeCategory(rec.Category)
		if err != nil {
			return nil, fmt.Errorf("parse task %s category: %w", rec.ID, err)
		}
		snap.Tasks = append(snap.Tasks, domain.Task{
			ID:            rec.ID,
			Category:      cat,
			Description:   rec.Description,
			AvailableDate: rec.AvailableDate,
			DueDate:       rec.DueDate,
			Completed:     rec.Completed,
			Subtasks:      rec.Subtasks,
		})
	}

	return snap, nil
}

// taskRecord defers category decoding so both the bare-string and the
// object form can be accepted.
type taskRecord struct {
	ID            string           `json:"id"`
	Category      json.RawMessage  `json:"category"`
	Description   string           `json:"description"`
	AvailableDate *time.Time       `json:"availableDate"`
	DueDate       time.Time        `json:"dueDate"`
	Completed     bool             `json:"completed"`
	Subtasks      []domain.Subtask `json:"subtaskList"`
}

func decodeCategory(raw json.RawMessage) (domain.Category, error) {
	if len(raw) == 0 {
		return domain.Category{}, nil
	}
	if raw[0] == '"' {
		// Legacy shape: the category is just its name.
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return domain.Category{}, err
		}
		return domain.Category{Name: name, Color: domain.DefaultColor}, nil
	}
	var cat domain.Category
	if err := json.Unmarshal(raw, &cat); err != nil {
		return domain.Category{}, err
	}
	return cat, nil
}
