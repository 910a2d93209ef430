package inspection

import (
	"fmt"
	"io"
	"mime/multipart"

	"fieldcheck/internal/imaging"
	"fieldcheck/internal/model"
)

// MaxUploadImageSize 单张图片上限
const MaxUploadImageSize = 20 << 20

// ImagesFromUploads 将上传的图片文件依次转换为 data URI；非图片文件被拒绝
func ImagesFromUploads(files []*multipart.FileHeader) ([]string, error) {
	out := make([]string, 0, len(files))
	for _, fh := range files {
		if fh.Size > MaxUploadImageSize {
			return nil, model.NewValidationError("Images", fmt.Sprintf("图片 %s 超过 %d MB", fh.Filename, MaxUploadImageSize>>20))
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("读取上传文件失败: %w", err)
		}
		data, err := io.ReadAll(io.LimitReader(f, MaxUploadImageSize+1))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("读取上传文件失败: %w", err)
		}
		uri, err := imaging.EncodeDataURI(data)
		if err != nil {
			return nil, model.NewValidationError("Images", fmt.Sprintf("%s 不是支持的图片格式", fh.Filename))
		}
		out = append(out, uri)
	}
	return out, nil
}
