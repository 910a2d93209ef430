package store

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"fieldcheck/internal/model"
)

// DefaultKey 查验数据的固定存储键
const DefaultKey = "inspection_app_v1"

// MaxCorruptCopies 保留的损坏数据副本数量，更早的副本会被清理
const MaxCorruptCopies = 3

// StorageDecodeError 已存数据无法解析；原始内容已另存到 BackupKey
type StorageDecodeError struct {
	Key       string
	BackupKey string
	Cause     error
}

func (e *StorageDecodeError) Error() string {
	return fmt.Sprintf("stored data under %s is malformed (raw copy kept as %s): %v", e.Key, e.BackupKey, e.Cause)
}

func (e *StorageDecodeError) Unwrap() error { return e.Cause }

// Repository 以单个 JSON 值持久化整个 model.Store
type Repository struct {
	kv  *Store
	key string
	now func() time.Time
}

// NewRepository key 为空时使用 DefaultKey
func NewRepository(kv *Store, key string) *Repository {
	if key == "" {
		key = DefaultKey
	}
	return &Repository{kv: kv, key: key, now: time.Now}
}

// Key 存储键
func (r *Repository) Key() string {
	return r.key
}

// Load 读取数据；键不存在时返回预置默认值。
// 内容损坏时同样返回默认值，并附带 *StorageDecodeError。
func (r *Repository) Load() (model.Store, error) {
	raw, ok, err := r.kv.Get(r.key)
	if err != nil {
		return model.Store{}, err
	}
	if !ok {
		return model.NewStore(), nil
	}

	var s model.Store
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		backupKey := r.corruptPrefix() + strconv.FormatInt(r.now().Unix(), 10)
		if perr := r.kv.Put(backupKey, raw); perr != nil {
			return model.Store{}, fmt.Errorf("failed to keep malformed data: %w", perr)
		}
		if perr := r.pruneCorruptCopies(); perr != nil {
			return model.Store{}, perr
		}
		return model.NewStore(), &StorageDecodeError{Key: r.key, BackupKey: backupKey, Cause: err}
	}
	s.Normalize()
	return s, nil
}

// Save 整体写入
func (r *Repository) Save(s model.Store) error {
	s.Normalize()
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	return r.kv.Put(r.key, string(data))
}

func (r *Repository) corruptPrefix() string {
	return r.key + ".corrupt."
}

// CorruptCopies 已保存的损坏数据副本键，旧的在前
func (r *Repository) CorruptCopies() ([]string, error) {
	prefix := r.corruptPrefix()
	keys, err := r.kv.Keys(prefix)
	if err != nil {
		return nil, err
	}
	stamp := func(k string) int64 {
		n, _ := strconv.ParseInt(strings.TrimPrefix(k, prefix), 10, 64)
		return n
	}
	slices.SortStableFunc(keys, func(a, b string) int {
		return cmp.Compare(stamp(a), stamp(b))
	})
	return keys, nil
}

func (r *Repository) pruneCorruptCopies() error {
	keys, err := r.CorruptCopies()
	if err != nil {
		return err
	}
	for len(keys) > MaxCorruptCopies {
		if err := r.kv.Delete(keys[0]); err != nil {
			return fmt.Errorf("failed to prune malformed copy: %w", err)
		}
		keys = keys[1:]
	}
	return nil
}
