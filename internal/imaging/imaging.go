package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// 头像最大边长和 JPEG 输出质量
const (
	MaxDimension = 512
	JPEGQuality  = 85
)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ProcessAvatar 读入上传数据，按字节嗅探格式（不信任客户端头），
// 超出 MaxDimension 时等比缩小，统一转成 JPEG 输出。
func ProcessAvatar(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format %s, only JPEG and PNG accepted", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = fit(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// fit 等比缩小到任一边不超过 maxDim，已在范围内则原样返回
func fit(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	nw, nh := maxDim, maxDim
	if w > h {
		nh = h * maxDim / w
	} else {
		nw = w * maxDim / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
