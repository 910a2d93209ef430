package inspection

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"fieldcheck/internal/backup"
	"fieldcheck/internal/model"
	"fieldcheck/internal/store"
)

// Download 一份待下载的文件
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImportResult 导入后的数据规模
type ImportResult struct {
	Projects  int    `json:"projects"`
	Issues    int    `json:"issues"`
	Templates int    `json:"templates"`
	SavedAs   string `json:"savedAs,omitempty"` // 导入前自动备份的文件
}

// ExportBackup 全量数据备份
func (s *Service) ExportBackup() (Download, error) {
	data, err := backup.Serialize(s.Snapshot())
	if err != nil {
		return Download{}, err
	}
	return Download{
		Filename:    backup.Filename(s.Labels(), s.today()),
		ContentType: "application/json",
		Data:        data,
	}, nil
}

// WriteBackup 将全量备份写入 path
func (s *Service) WriteBackup(path string) error {
	d, err := s.ExportBackup()
	if err != nil {
		return err
	}
	return writeFileAtomic(path, d.Data)
}

// ImportBackup 用备份文件整体替换当前数据。格式不正确时返回
// *backup.FormatError，现有数据不变。
func (s *Service) ImportBackup(data []byte, source string) (ImportResult, error) {
	sum := sha256.Sum256(data)
	entry := store.ImportLog{
		Filename: source,
		FileSize: int64(len(data)),
		FileHash: hex.EncodeToString(sum[:]),
	}

	imported, err := backup.Deserialize(data)
	if err != nil {
		entry.Status = store.ImportRejected
		entry.ErrorMessage = err.Error()
		s.recordImport(entry)
		return ImportResult{}, err
	}

	var result ImportResult
	err = s.commit(func(st *model.Store) error {
		if s.backupDir != "" {
			path := filepath.Join(s.backupDir, fmt.Sprintf("pre-import-%s.json", s.now().In(s.location).Format("20060102-150405")))
			prev, err := backup.Serialize(*st)
			if err != nil {
				return err
			}
			if err := writeFileAtomic(path, prev); err != nil {
				return fmt.Errorf("导入前备份失败: %w", err)
			}
			result.SavedAs = path
		}
		*st = imported
		return nil
	})
	if err != nil {
		// 数据未替换，导入前备份随之作废
		if result.SavedAs != "" {
			if rerr := os.Remove(result.SavedAs); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
				s.logger.Warn("清理导入前备份失败", zap.String("path", result.SavedAs), zap.Error(rerr))
			}
		}
		entry.Status = store.ImportFailed
		entry.ErrorMessage = err.Error()
		s.recordImport(entry)
		return ImportResult{}, err
	}

	result.Projects = len(imported.Projects)
	result.Issues = len(imported.Issues)
	result.Templates = len(imported.Templates)
	entry.Status = store.ImportSucceeded
	entry.Projects, entry.Issues, entry.Templates = result.Projects, result.Issues, result.Templates
	s.recordImport(entry)
	s.logger.Info("备份已导入",
		zap.String("source", source),
		zap.Int("projects", result.Projects),
		zap.Int("issues", result.Issues),
	)
	return result, nil
}

func (s *Service) recordImport(entry store.ImportLog) {
	if s.importLog == nil {
		return
	}
	if _, err := s.importLog.CreateImportLog(entry); err != nil {
		s.logger.Warn("记录导入日志失败", zap.Error(err))
	}
}

// ImportLogs 最近的备份导入记录
func (s *Service) ImportLogs(limit int) ([]store.ImportLog, error) {
	if s.importLog == nil {
		return []store.ImportLog{}, nil
	}
	return s.importLog.ListImportLogs(limit)
}
