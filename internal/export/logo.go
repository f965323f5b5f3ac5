package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var errLogoNotConfigured = errors.New("未配置 logo 路径")

// logo 已解码并重新编码为 PNG 的徽标
type logo struct {
	png    []byte
	width  int
	height int
}

// loadLogo 读取 png / jpeg / webp 徽标，超过 maxWidth 时按比例缩放
func loadLogo(path string, maxWidth int) (*logo, error) {
	if path == "" {
		return nil, errLogoNotConfigured
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取 logo 失败: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("解码 logo 失败: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, errors.New("logo 尺寸无效")
	}

	if maxWidth > 0 && bounds.Dx() > maxWidth {
		h := bounds.Dy() * maxWidth / bounds.Dx()
		if h < 1 {
			h = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
		img = dst
		bounds = dst.Bounds()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 logo 失败: %w", err)
	}
	return &logo{png: buf.Bytes(), width: bounds.Dx(), height: bounds.Dy()}, nil
}
