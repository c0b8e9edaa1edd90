package persistence

import "task-manager/internal/domain"

// taskRow is the stored shape of a task, independent of domain.TaskRecord
type taskRow struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// toRows converts domain records to their stored shape. The result is never nil.
func toRows(records []domain.TaskRecord) []taskRow {
	rows := make([]taskRow, len(records))
	for i, record := range records {
		rows[i] = taskRow{Title: record.Title, Description: record.Description}
	}
	return rows
}

// fromRows converts stored rows back to domain records
func fromRows(rows []taskRow) []domain.TaskRecord {
	records := make([]domain.TaskRecord, len(rows))
	for i, row := range rows {
		records[i] = domain.TaskRecord{Title: row.Title, Description: row.Description}
	}
	return records
}
