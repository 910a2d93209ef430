package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Picture 可直接嵌入文档的图片：JPEG 原样保留，其余格式统一转为 PNG
type Picture struct {
	Data   []byte
	Type   string // "JPG" | "PNG"
	Width  int
	Height int
}

// DecodePicture 从问题图片载荷得到可嵌入的图片
func DecodePicture(payload string) (Picture, error) {
	raw, err := DecodePayload(payload)
	if err != nil {
		return Picture{}, err
	}
	mime, err := Detect(raw)
	if err != nil {
		return Picture{}, err
	}

	if mime == "image/jpeg" {
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(raw))
		if err != nil {
			return Picture{}, fmt.Errorf("%w: jpeg: %v", ErrBadPayload, err)
		}
		return Picture{Data: raw, Type: "JPG", Width: cfg.Width, Height: cfg.Height}, nil
	}

	img, err := decodeImage(mime, raw)
	if err != nil {
		return Picture{}, fmt.Errorf("%w: %s: %v", ErrBadPayload, mime, err)
	}
	// 重新编码为非隔行 PNG，避免 PDF 写入端不支持的变体
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Picture{}, fmt.Errorf("%w: re-encode: %v", ErrBadPayload, err)
	}
	b := img.Bounds()
	return Picture{Data: buf.Bytes(), Type: "PNG", Width: b.Dx(), Height: b.Dy()}, nil
}

func decodeImage(mime string, raw []byte) (image.Image, error) {
	r := bytes.NewReader(raw)
	switch mime {
	case "image/png":
		return png.Decode(r)
	case "image/gif":
		return gif.Decode(r)
	case "image/webp":
		return webp.Decode(r)
	case "image/bmp":
		return bmp.Decode(r)
	case "image/tiff":
		return tiff.Decode(r)
	}
	return nil, fmt.Errorf("unsupported format %s", mime)
}
