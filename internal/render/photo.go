package render

import (
	"encoding/base64"
	"strings"

	"cvbuilder_backend/internal/services/dto"

	"github.com/gabriel-vasile/mimetype"
)

// PhotoResolver превращает фото черновика в источник для <img>.
// transient=true означает ссылку, которую нужно освободить через Document.Release.
type PhotoResolver interface {
	Resolve(photo dto.Photo) (src string, transient bool)
}

type PhotoResolverFunc func(photo dto.Photo) (string, bool)

func (f PhotoResolverFunc) Resolve(photo dto.Photo) (string, bool) { return f(photo) }

// DataURIResolver: URL как есть, ожидающий файл - data URI, иначе пусто.
var DataURIResolver PhotoResolver = PhotoResolverFunc(func(photo dto.Photo) (string, bool) {
	switch photo.Kind {
	case dto.PhotoURL:
		return photo.URL, false
	case dto.PhotoPending:
		if photo.Pending == nil || len(photo.Pending.Data) == 0 {
			return "", false
		}
		ct := photo.Pending.ContentType
		if ct == "" {
			ct = mimetype.Detect(photo.Pending.Data).String()
		}
		if i := strings.IndexByte(ct, ';'); i >= 0 {
			ct = ct[:i]
		}
		return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(photo.Pending.Data), true
	default:
		return "", false
	}
})
