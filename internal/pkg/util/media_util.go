package util

import (
	"TaylorDAM/internal/pkg/consts"
	"bytes"
	"crypto/rand"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math/big"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

var allowedExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "webp": {}, "heic": {}, "heif": {},
	"mp4": {}, "mov": {}, "m4v": {}, "mpeg": {},
}

var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {}, "image/png": {}, "image/gif": {}, "image/webp": {}, "image/heic": {}, "image/heif": {},
	"video/mp4": {}, "video/quicktime": {}, "video/x-m4v": {}, "video/mpeg": {},
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// FileExt 返回小写扩展名（不含点）
func FileExt(filename string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
}

func IsAllowedExtension(ext string) bool {
	_, ok := allowedExtensions[strings.ToLower(ext)]
	return ok
}

func IsAllowedContentType(contentType string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	_, ok := allowedContentTypes[mediaType]
	return ok
}

// IsMediaContentType 仅接受图片与视频
func IsMediaContentType(contentType string) bool {
	return strings.HasPrefix(contentType, consts.MimePrefixImage) || strings.HasPrefix(contentType, consts.MimePrefixVideo)
}

// SanitizeBaseName 文件名去扩展名后小写，非字母数字替换为 -，最长 50
func SanitizeBaseName(filename string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	base = nonAlnum.ReplaceAllString(strings.ToLower(base), "-")
	base = strings.Trim(base, "-")
	if len(base) > 50 {
		base = strings.TrimRight(base[:50], "-")
	}
	if base == "" {
		base = "file"
	}
	return base
}

// RandomSuffix 生成 n 位 base36 随机串
func RandomSuffix(n int) string {
	var sb strings.Builder
	max := big.NewInt(int64(len(base36)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			idx = big.NewInt(time.Now().UnixNano() % int64(len(base36)))
		}
		sb.WriteByte(base36[idx.Int64()])
	}
	return sb.String()
}

// BuildObjectKey media/{userId}/{name}-{ts}-{rand}.{ext}
func BuildObjectKey(userID string, filename string, now time.Time) string {
	return fmt.Sprintf("%s%s/%s-%d-%s.%s",
		consts.MediaObjectPrefix, userID, SanitizeBaseName(filename), now.UnixMilli(), RandomSuffix(6), FileExt(filename))
}

// ThumbnailKey 缩略图 key 与原始 key 一一对应
func ThumbnailKey(objectKey string) string {
	return consts.ThumbnailObjectPrefix + objectKey + ".jpg"
}

// GetSafeContentType 通过文件头嗅探真实类型，读取后复位 reader
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	contentType := http.DetectContentType(buf[:n])
	// DetectContentType 不识别 mov/heic，用 ftyp brand 兜底
	if contentType == "application/octet-stream" && n >= 12 && string(buf[4:8]) == "ftyp" {
		switch string(buf[8:12]) {
		case "qt  ":
			contentType = "video/quicktime"
		case "heic", "heix", "mif1":
			contentType = "image/heic"
		case "M4V ":
			contentType = "video/x-m4v"
		default:
			contentType = "video/mp4"
		}
	}
	return contentType, nil
}

// MakeThumbnail 生成固定宽度的 JPEG 缩略图，无法解码的格式返回错误
func MakeThumbnail(reader io.Reader, width int) ([]byte, error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 82}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
