package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"cvbuilder_backend/internal/logger"
	"cvbuilder_backend/internal/storage"
	"cvbuilder_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// sniffLen - сколько байт читаем для определения типа
const sniffLen = 3072

// FileHandler раздает файлы локального хранилища по публичному префиксу
// (storage.base_url). Для S3/R2 файлы отдает сам бакет.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     store,
	}
}

// RegisterRoutes: prefix - путь из base_url, например /files
func (h *FileHandler) RegisterRoutes(r gin.IRoutes, prefix string) {
	prefix = "/" + strings.Trim(prefix, "/")
	r.GET(prefix+"/*path", h.ServeFile)
	r.HEAD(prefix+"/*path", h.CheckFileExists)
}

func filePath(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("path"), "/")
}

// ServeFile отдает файл; Content-Type определяется по содержимому
func (h *FileHandler) ServeFile(c *gin.Context) {
	ctx := c.Request.Context()
	path := filePath(c)

	reader, err := h.storage.Get(ctx, path)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrNotFound(err))
		return
	}
	defer reader.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(reader, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	head = head[:n]

	c.Header("Content-Type", mimetype.Detect(head).String())
	if size, err := h.storage.GetSize(ctx, path); err == nil {
		c.Header("Content-Length", strconv.FormatInt(size, 10))
	}
	c.Header("Cache-Control", "public, max-age=31536000")
	c.Header("Content-Disposition", "inline")
	// файлы пользователей отдаются с origin API: браузер не должен их исполнять
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Content-Security-Policy", "default-src 'none'; sandbox")
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, io.MultiReader(bytes.NewReader(head), reader)); err != nil {
		// заголовки уже отправлены
		logger.CtxWithError(ctx, "failed to stream file", err, "path", path)
	}
}

func (h *FileHandler) CheckFileExists(c *gin.Context) {
	exists, err := h.storage.Exists(c.Request.Context(), filePath(c))
	if err != nil || !exists {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}
