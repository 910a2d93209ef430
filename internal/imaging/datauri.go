// Package imaging 图片载荷处理：data URI 编解码、格式识别与归一化
package imaging

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrNotImage 载荷不是可识别的栅格图片
	ErrNotImage = errors.New("not a supported raster image")
	// ErrBadPayload 载荷无法解码
	ErrBadPayload = errors.New("malformed image payload")
)

var acceptedMIME = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/bmp",
	"image/tiff",
}

// Detect 识别图片 MIME（以内容为准，不信任声明的类型）
func Detect(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	for _, m := range acceptedMIME {
		if mt.Is(m) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotImage, mt.String())
}

// EncodeDataURI 将原始图片字节编码为自描述的 data URI
func EncodeDataURI(data []byte) (string, error) {
	mime, err := Detect(data)
	if err != nil {
		return "", err
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodePayload 解析 data URI 或裸 base64，返回原始字节
func DecodePayload(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadPayload)
	}

	if !strings.HasPrefix(payload, "data:") {
		return decodeBase64(payload)
	}

	comma := strings.IndexByte(payload, ',')
	if comma < 0 {
		return nil, fmt.Errorf("%w: missing data separator", ErrBadPayload)
	}
	meta, body := payload[len("data:"):comma], payload[comma+1:]
	if strings.HasSuffix(meta, ";base64") {
		return decodeBase64(body)
	}
	raw, err := url.PathUnescape(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return []byte(raw), nil
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if data, err := enc.DecodeString(s); err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid base64", ErrBadPayload)
}
