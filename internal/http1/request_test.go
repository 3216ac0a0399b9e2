package http1

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWantsKeepAlive(t *testing.T) {
	tests := []struct {
		name       string
		proto      string
		connection string
		want       bool
	}{
		{"http11 default persistent", "HTTP/1.1", "", true},
		{"http10 default close", "HTTP/1.0", "", false},
		{"explicit close wins", "HTTP/1.1", "close", false},
		{"explicit keep-alive wins on http10", "HTTP/1.0", "keep-alive", true},
		{"case insensitive", "HTTP/1.1", "Close", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &Request{Proto: tt.proto, Header: map[string]string{}}
			if tt.connection != "" {
				req.Header["connection"] = tt.connection
			}
			assert.Equal(t, tt.want, req.WantsKeepAlive())
		})
	}
}
