package handler

import (
	"encoding/json"
	"strings"

	"github.com/lowkeyarhan/Socket-P-assignment/internal/http1"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/respond"
)

type uploadResult struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Filepath string `json:"filepath"`
}

func (h *Handler) handlePost(req *http1.Request) *respond.Response {
	if !strings.HasPrefix(req.HeaderValue("Content-Type"), "application/json") {
		return h.writer.ErrorPage(415, "Only application/json is supported")
	}

	var doc any
	if err := json.Unmarshal(req.Body, &doc); err != nil {
		return h.writer.ErrorPage(400, "Invalid JSON data")
	}

	name, err := h.uploads.Save(doc)
	if err != nil {
		h.logger.Error("save upload", "error", err)
		return h.writer.ErrorPage(500, "")
	}
	h.logger.Info("json file created", "file", name)

	body, err := json.MarshalIndent(uploadResult{
		Status:   "success",
		Message:  "File created successfully",
		Filepath: "/uploads/" + name,
	}, "", "  ")
	if err != nil {
		return h.writer.ErrorPage(500, "")
	}
	return &respond.Response{
		Status:      201,
		ContentType: "application/json",
		Body:        body,
	}
}
