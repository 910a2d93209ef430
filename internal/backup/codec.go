// Package backup 全量数据备份的 JSON 编解码
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"fieldcheck/internal/model"
)

// FormatError 备份文件格式不正确；导入被拒绝，现有数据不变
type FormatError struct {
	// Missing 缺失或为 null 的必需字段（JSON 字段名）
	Missing []string
	Cause   error
}

func (e *FormatError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return fmt.Sprintf("文件格式不正确: 缺少字段 %s", strings.Join(e.Missing, ", "))
	case e.Cause != nil:
		return fmt.Sprintf("文件格式不正确: %v", e.Cause)
	default:
		return "文件格式不正确"
	}
}

func (e *FormatError) Unwrap() error { return e.Cause }

// IsFormatError 判断是否为备份格式错误
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// envelope 区分“字段缺失”与“空数组”
type envelope struct {
	Projects  *[]model.Project  `json:"projects" validate:"required"`
	Issues    *[]model.Issue    `json:"issues" validate:"required"`
	Templates *[]model.Template `json:"templates"`
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// Serialize 将完整数据序列化为缩进 JSON
func Serialize(store model.Store) ([]byte, error) {
	store.Normalize()
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("序列化备份失败: %w", err)
	}
	return data, nil
}

// Deserialize 解析备份文件；projects 与 issues 必须存在，templates 缺失时使用预置模板
func Deserialize(data []byte) (model.Store, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return model.Store{}, &FormatError{Cause: err}
	}
	if err := validate.Struct(env); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return model.Store{}, &FormatError{Cause: err}
		}
		fe := &FormatError{}
		for _, f := range fieldErrs {
			fe.Missing = append(fe.Missing, f.Field())
		}
		return model.Store{}, fe
	}

	store := model.Store{
		Projects: *env.Projects,
		Issues:   *env.Issues,
	}
	if env.Templates != nil {
		store.Templates = *env.Templates
	}
	store.Normalize()
	return store, nil
}

// Filename 备份文件名，如 backup-2026-10-18.json
func Filename(labels model.Labels, date string) string {
	return fmt.Sprintf("%s-%s.json", labels.BackupFile, date)
}
