package imageprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

// ErrNotImage - содержимое не является изображением.
var ErrNotImage = errors.New("content is not an image")

// ErrVectorImage - SVG может содержать скрипты, поэтому не принимается.
var ErrVectorImage = errors.New("vector images are not accepted")

// Info - сведения об изображении, полученные по содержимому файла.
type Info struct {
	MIME   string
	Ext    string
	Width  int
	Height int
}

// Inspect определяет тип по содержимому (а не по заявленному Content-Type)
// и читает заголовок растра, чтобы отсеять битые файлы. Принимаются только
// растровые форматы.
func Inspect(data []byte) (*Info, error) {
	mt := mimetype.Detect(data)
	mime := mt.String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}

	if mime == "image/svg+xml" {
		return nil, fmt.Errorf("%w: detected %s", ErrVectorImage, mime)
	}

	info := &Info{MIME: mime, Ext: mt.Extension()}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	info.Width = cfg.Width
	info.Height = cfg.Height
	return info, nil
}

// IsAllowed проверяет MIME-тип по списку из конфигурации.
// Пустой список разрешает любое изображение.
func IsAllowed(mime string, allowed []string) bool {
	if len(allowed) == 0 {
		return strings.HasPrefix(mime, "image/")
	}
	for _, a := range allowed {
		if strings.EqualFold(a, mime) {
			return true
		}
	}
	return false
}
