package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTaskRecord(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		expected    TaskRecord
	}{
		{
			name:        "creates record with fields",
			title:       "Buy milk",
			description: "2%  whole",
			expected:    TaskRecord{Title: "Buy milk", Description: "2%  whole"},
		},
		{
			name:        "trims surrounding whitespace",
			title:       "  Pay bills\t",
			description: "\ndue Friday\n",
			expected:    TaskRecord{Title: "Pay bills", Description: "due Friday"},
		},
		{
			name:        "keeps inner newlines",
			title:       "Notes",
			description: "line one\nline two",
			expected:    TaskRecord{Title: "Notes", Description: "line one\nline two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewTaskRecord(tt.title, tt.description)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestTaskRecord_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		record   TaskRecord
		expected bool
	}{
		{"valid record", TaskRecord{Title: "A", Description: "B"}, true},
		{"empty title", TaskRecord{Title: "", Description: "B"}, false},
		{"empty description", TaskRecord{Title: "A", Description: ""}, false},
		{"whitespace only", TaskRecord{Title: "   ", Description: "\t"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.IsValid())
		})
	}
}

func TestTaskRecord_String(t *testing.T) {
	record := TaskRecord{Title: "My Task", Description: "details"}
	assert.Equal(t, "My Task", record.String())
}

func TestNewTaskPreview(t *testing.T) {
	preview := NewTaskPreview(2, TaskRecord{Title: "T", Description: "D"})
	assert.Equal(t, TaskPreview{Index: 2, Title: "T", Description: "D"}, preview)
}
