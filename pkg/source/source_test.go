package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func page(charset, body string) string {
	meta := ""
	if charset != "" {
		meta = `<meta http-equiv="Content-Type" content="text/html; charset=` + charset + `" />`
	}
	return `<!DOCTYPE html><html><head>` + meta + `<title>ADIF</title></head><body>` + body + `</body></html>`
}

func TestLoad_Windows1252(t *testing.T) {
	data := []byte(page("windows-1252", "<p>Caf\xe9</p>"))
	doc, err := Load(data, "ADIF_316.htm")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Encoding != EncodingWindows1252 {
		t.Errorf("Encoding = %q, want %q", doc.Encoding, EncodingWindows1252)
	}
	if got := doc.Find("p").Text(); got != "Café" {
		t.Errorf("text = %q, want Café", got)
	}
	if doc.Name != "ADIF_316.htm" {
		t.Errorf("Name = %q", doc.Name)
	}
}

func TestLoad_UTF8WithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, page("UTF-8", "<p>Café</p>")...)
	doc, err := Load(data, "ADIF_316.htm")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Encoding != EncodingUTF8 || doc.Charset != "utf-8" {
		t.Errorf("Encoding = %q, Charset = %q", doc.Encoding, doc.Charset)
	}
	if got := doc.Find("p").Text(); got != "Café" {
		t.Errorf("text = %q, want Café", got)
	}
}

func TestLoad_ISO88591Accepted(t *testing.T) {
	if _, err := Load([]byte(page("iso-8859-1", "<p>x</p>")), "a.htm"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestLoad_EncodingErrors(t *testing.T) {
	bom := string([]byte{0xEF, 0xBB, 0xBF})
	tests := []struct {
		name string
		data string
	}{
		{"bom but declared windows-1252", bom + page("windows-1252", "<p>x</p>")},
		{"declared utf-8 without bom", page("utf-8", "<p>x</p>")},
		{"unknown charset", page("koi8-r", "<p>x</p>")},
		{"no charset", page("", "<p>x</p>")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.data), "a.htm")
			if !errors.Is(err, ErrEncoding) {
				t.Fatalf("Load() error = %v, want ErrEncoding", err)
			}
		})
	}
}

func TestLoad_NotHTML(t *testing.T) {
	_, err := Load([]byte("just some text"), "a.txt")
	if err == nil || !strings.Contains(err.Error(), "<html>") {
		t.Fatalf("Load() error = %v", err)
	}
	if errors.Is(err, ErrEncoding) {
		t.Error("missing <html> is not an encoding error")
	}
}

func TestLoad_TooShort(t *testing.T) {
	if _, err := Load([]byte("<h"), "a.htm"); err == nil {
		t.Fatal("expected error for a two byte file")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ADIF_316_annotated.htm")
	if err := os.WriteFile(path, []byte(page("windows-1252", "<p>x</p>")), 0o600); err != nil {
		t.Fatal(err)
	}
	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if doc.Name != "ADIF_316_annotated.htm" {
		t.Errorf("Name = %q, want base name", doc.Name)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.htm")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestDecodeContentType(t *testing.T) {
	media, charset := decodeContentType("text/html; Charset=Windows-1252")
	if media != "text/html" || charset != "windows-1252" {
		t.Errorf("decodeContentType() = %q, %q", media, charset)
	}
	if _, charset := decodeContentType("text/html"); charset != "" {
		t.Errorf("charset = %q, want empty", charset)
	}
}
