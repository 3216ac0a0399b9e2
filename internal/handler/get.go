package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lowkeyarhan/Socket-P-assignment/internal/http1"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/respond"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/security"
)

func (h *Handler) handleGet(req *http1.Request) *respond.Response {
	rel, err := security.SanitizePath(req.Path, h.defaultDoc)
	if err != nil {
		h.logger.Warn("path traversal attempt", "path", req.Path)
		return h.writer.ErrorPage(403, "Access denied")
	}

	filePath := filepath.Join(h.root, rel)
	info, err := os.Stat(filePath)
	if err != nil || !info.Mode().IsRegular() {
		return h.writer.ErrorPage(404, fmt.Sprintf("File %s not found", req.Path))
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".html":
		return h.serveInline(filePath)
	case ".txt", ".png", ".jpg", ".jpeg":
		return h.serveDownload(filePath)
	default:
		return h.writer.ErrorPage(415, fmt.Sprintf("File type %s not supported", filepath.Ext(filePath)))
	}
}

func (h *Handler) serveInline(filePath string) *respond.Response {
	content, err := h.readFile(filePath)
	if err != nil {
		h.logger.Error("read file", "path", filePath, "error", err)
		return h.writer.ErrorPage(500, "")
	}
	h.logger.Info("served html file", "file", filepath.Base(filePath), "bytes", len(content))
	return &respond.Response{
		Status:      200,
		ContentType: "text/html; charset=utf-8",
		Body:        content,
	}
}

func (h *Handler) serveDownload(filePath string) *respond.Response {
	content, err := h.readFile(filePath)
	if err != nil {
		h.logger.Error("read file", "path", filePath, "error", err)
		return h.writer.ErrorPage(500, "")
	}
	name := filepath.Base(filePath)
	h.logger.Info("sending binary file", "file", name, "bytes", len(content))
	return &respond.Response{
		Status:      200,
		ContentType: "application/octet-stream",
		Body:        content,
		Extra: []http1.HeaderField{
			{Name: "Content-Disposition", Value: fmt.Sprintf("attachment; filename=%q", name)},
		},
	}
}

func (h *Handler) readFile(filePath string) ([]byte, error) {
	if content, ok := h.cache.Get(filePath); ok {
		return content, nil
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	h.cache.Set(filePath, content)
	return content, nil
}
