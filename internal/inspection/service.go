// Package inspection 查验记录的业务入口：持有内存数据，每次变更后整体保存
package inspection

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"fieldcheck/internal/export"
	"fieldcheck/internal/model"
	"fieldcheck/internal/report"
	"fieldcheck/internal/store"
)

var (
	// ErrNotFound 项目、问题或模板不存在
	ErrNotFound = errors.New("not found")
	// ErrNothingToExport 筛选结果为空
	ErrNothingToExport = report.ErrNothingToExport
)

// Persister 整体读写 model.Store
type Persister interface {
	Load() (model.Store, error)
	Save(model.Store) error
}

// ImportLogger 备份导入记录（可选）
type ImportLogger interface {
	CreateImportLog(store.ImportLog) (int64, error)
	ListImportLogs(limit int) ([]store.ImportLog, error)
}

// Options 服务依赖
type Options struct {
	Persister Persister
	ImportLog ImportLogger
	Renderer  *report.Renderer
	Logger    *zap.Logger
	Location  *time.Location
	Now       func() time.Time
	// BackupDir 导入前自动备份当前数据的目录，为空则不备份
	BackupDir string
}

// Service 查验业务服务，可被多个 HTTP 请求并发调用
type Service struct {
	persister Persister
	importLog ImportLogger
	renderer  *report.Renderer
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time
	backupDir string

	mu   sync.Mutex
	data model.Store
}

// NewService 创建服务；数据需随后调用 Load 载入
func NewService(opts Options) (*Service, error) {
	if opts.Persister == nil {
		return nil, errors.New("persister is required")
	}
	s := &Service{
		persister: opts.Persister,
		importLog: opts.ImportLog,
		renderer:  opts.Renderer,
		logger:    opts.Logger,
		location:  opts.Location,
		now:       opts.Now,
		backupDir: opts.BackupDir,
		data:      model.NewStore(),
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.location == nil {
		s.location = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.renderer == nil {
		r, err := report.NewRenderer(report.Options{Logger: s.logger, Location: s.location, Now: s.now})
		if err != nil {
			return nil, err
		}
		s.renderer = r
	}
	return s, nil
}

// Load 从持久层载入数据。已存数据损坏时记录告警并以默认数据启动。
func (s *Service) Load() error {
	data, err := s.persister.Load()
	var decodeErr *store.StorageDecodeError
	switch {
	case errors.As(err, &decodeErr):
		s.logger.Warn("已存数据无法解析，使用默认数据启动",
			zap.String("key", decodeErr.Key),
			zap.String("rawCopy", decodeErr.BackupKey),
			zap.Error(decodeErr.Cause),
		)
	case err != nil:
		return fmt.Errorf("载入数据失败: %w", err)
	}
	data.Normalize()

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	s.logger.Info("数据已载入",
		zap.Int("projects", len(data.Projects)),
		zap.Int("issues", len(data.Issues)),
		zap.Int("templates", len(data.Templates)),
	)
	return nil
}

// Snapshot 当前数据的深拷贝
func (s *Service) Snapshot() model.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Labels 导出使用的文案
func (s *Service) Labels() model.Labels {
	return s.renderer.Labels()
}

// commit 在副本上执行变更，保存成功后替换内存数据
func (s *Service) commit(fn func(*model.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.persister.Save(next); err != nil {
		return fmt.Errorf("保存失败: %w", err)
	}
	s.data = next
	return nil
}

func (s *Service) exportOptions() export.Options {
	return export.Options{Labels: s.Labels(), Location: s.location, Now: s.now}
}

func (s *Service) today() string {
	return s.now().In(s.location).Format("2006-01-02")
}
