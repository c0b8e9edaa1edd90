package domain

import "strings"

// TaskRecord represents a single task in the domain model.
// It has no identity beyond its position in the owning list and is never
// modified after creation.
type TaskRecord struct {
	Title       string
	Description string
}

// NewTaskRecord creates a TaskRecord with surrounding whitespace removed from both fields.
func NewTaskRecord(title, description string) TaskRecord {
	return TaskRecord{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}
}

// IsValid checks that both fields have content.
func (t TaskRecord) IsValid() bool {
	return strings.TrimSpace(t.Title) != "" && strings.TrimSpace(t.Description) != ""
}

// String returns the task title for display purposes.
func (t TaskRecord) String() string {
	return t.Title
}

// TaskDraft holds the input for a task that has not been added yet.
type TaskDraft struct {
	Title       string
	Description string
}

// TaskPreview is a read-only view of an existing task at a position in the list.
type TaskPreview struct {
	Index       int
	Title       string
	Description string
}

// NewTaskPreview creates a preview of record at index.
func NewTaskPreview(index int, record TaskRecord) TaskPreview {
	return TaskPreview{
		Index:       index,
		Title:       record.Title,
		Description: record.Description,
	}
}
