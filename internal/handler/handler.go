// Package handler routes parsed requests to file serving or JSON upload
// logic and produces the response to transmit.
package handler

import (
	"log/slog"

	"github.com/lowkeyarhan/Socket-P-assignment/internal/filecache"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/http1"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/respond"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/storage"
)

// Handler serves GET and POST requests that already passed the security
// gate. Anything it returns is ready to write; internal failures surface as
// a 500 page, never as an error to the connection loop.
type Handler struct {
	root       string
	defaultDoc string
	uploads    *storage.Store
	cache      *filecache.Cache
	writer     *respond.Writer
	logger     *slog.Logger
}

// Config wires a Handler.
type Config struct {
	Root       string
	DefaultDoc string
	Uploads    *storage.Store
	Cache      *filecache.Cache
	Writer     *respond.Writer
	Logger     *slog.Logger
}

// New returns a Handler for the given serving root.
func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	defaultDoc := cfg.DefaultDoc
	if defaultDoc == "" {
		defaultDoc = "index.html"
	}
	return &Handler{
		root:       cfg.Root,
		defaultDoc: defaultDoc,
		uploads:    cfg.Uploads,
		cache:      cfg.Cache,
		writer:     cfg.Writer,
		logger:     logger,
	}
}

// Handle dispatches by method. GET resolves files under the root, POST
// accepts JSON uploads, everything else is 405.
func (h *Handler) Handle(req *http1.Request) *respond.Response {
	switch req.Method {
	case "GET":
		return h.handleGet(req)
	case "POST":
		return h.handlePost(req)
	default:
		return h.writer.ErrorPage(405, "Method "+req.Method+" is not supported")
	}
}
