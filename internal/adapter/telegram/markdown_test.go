package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMarkdownV2(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello there", "Hello there"},
		{"escapes specials", "v1.2 (beta)!", `v1\.2 \(beta\)\!`},
		{"bold heading and bullets", "**Skills:**\n- Go", "*Skills:*\n\\- Go"},
		{"italic tech", "_(Tech: Go, SQL)_", `_\(Tech: Go, SQL\)_`},
		{"star italic", "*Acme*", "_Acme_"},
		{"link", "[me@x.io](mailto:me@x.io)", `[me@x\.io](mailto:me@x.io)`},
		{"code", "run `go test ./...`", "run `go test ./...`"},
		{"unpaired marker", "2 * 3 = 6", `2 \* 3 \= 6`},
		{"backslash", `C:\dir`, `C:\\dir`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toMarkdownV2(tt.in))
		})
	}
}
