package store

import (
	"fmt"
	"time"
)

// 导入状态
const (
	ImportSucceeded = "success"
	ImportRejected  = "rejected"
	// ImportFailed 格式正确但保存失败
	ImportFailed = "failed"
)

// ImportLog 一次备份导入的记录
type ImportLog struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	FileSize     int64     `json:"fileSize"`
	FileHash     string    `json:"fileHash"`
	Projects     int       `json:"projects"`
	Issues       int       `json:"issues"`
	Templates    int       `json:"templates"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateImportLog 写入导入记录，返回 id
func (s *Store) CreateImportLog(l ImportLog) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (filename, file_size, file_hash, projects, issues, templates, status, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, l.Filename, l.FileSize, l.FileHash, l.Projects, l.Issues, l.Templates, l.Status, l.ErrorMessage)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// ListImportLogs 最近的导入记录，新的在前
func (s *Store) ListImportLogs(limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, filename, file_size, file_hash, projects, issues, templates, status, error_message, created_at
		FROM import_logs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import logs: %w", err)
	}
	defer rows.Close()

	logs := []ImportLog{}
	for rows.Next() {
		var l ImportLog
		if err := rows.Scan(&l.ID, &l.Filename, &l.FileSize, &l.FileHash, &l.Projects, &l.Issues,
			&l.Templates, &l.Status, &l.ErrorMessage, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
