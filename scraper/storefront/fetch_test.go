package storefront

import (
	"io"
	"strings"
	"testing"
)

func TestDecodeBodyWindows1251(t *testing.T) {
	// The storefront declares the charset either as a quoted meta
	// attribute or inside an unquoted http-equiv content value; both
	// must trigger decoding. "руб" in windows-1251 is 0xF0 0xF3 0xE1.
	heads := []string{
		`<html><head><meta charset="windows-1251"></head><body>`,
		`<html><head><meta charset='windows-1251'></head><body>`,
		`<html><head><meta http-equiv="Content-Type" content="text/html; charset=windows-1251"></head><body>`,
	}

	for _, head := range heads {
		body := append([]byte(head), 0xF0, 0xF3, 0xE1)
		body = append(body, []byte("</body></html>")...)

		decoded, err := io.ReadAll(decodeBody(body))
		if err != nil {
			t.Fatalf("decode %q: %v", head, err)
		}
		if !strings.Contains(string(decoded), "руб") {
			t.Errorf("charset declaration %q not honored: got %q", head, decoded)
		}
	}
}

func TestDecodeBodyUTF8Passthrough(t *testing.T) {
	body := []byte(`<html><head><meta charset="utf-8"></head><body>руб</body></html>`)

	decoded, err := io.ReadAll(decodeBody(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded) != string(body) {
		t.Errorf("utf-8 body must pass through unchanged")
	}
}
