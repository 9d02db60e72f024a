package publish

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestPublisher_Key(t *testing.T) {
	tests := []struct {
		prefix string
		rel    string
		want   string
	}{
		{prefix: "adif", rel: "csv/fields.csv", want: "adif/3.1.5/csv/fields.csv"},
		{prefix: "/adif/specs/", rel: "json/all.json", want: "adif/specs/3.1.5/json/all.json"},
		{prefix: "", rel: "xml/all.xml", want: "3.1.5/xml/all.xml"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			p := New(NewLocalStore(t.TempDir()), "b", WithPrefix(tt.prefix))
			if got := p.Key("3.1.5", filepath.FromSlash(tt.rel)); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPublisher_Publish(t *testing.T) {
	root := writeTree(t, map[string]string{
		"csv/enumerations_band.csv": "\"Band\"\r\n",
		"json/all.json":             `{"Adif":{"Version":"3.1.5"}}`,
		"yaml/all.yaml":             "Adif:\n  Version: 3.1.5\n",
	})
	target := t.TempDir()
	store := NewLocalStore(target)

	var progress []string
	p := New(store, "adif-exports", WithPrefix("adif"), WithProgress(func(msg string) {
		progress = append(progress, msg)
	}))
	res, err := p.Publish(context.Background(), root, "3.1.5")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	wantKeys := []string{
		"adif/3.1.5/csv/enumerations_band.csv",
		"adif/3.1.5/json/all.json",
		"adif/3.1.5/yaml/all.yaml",
	}
	if strings.Join(res.Keys, ",") != strings.Join(wantKeys, ",") {
		t.Errorf("Keys = %v, want %v", res.Keys, wantKeys)
	}
	if res.Objects != 3 || res.Bucket != "adif-exports" {
		t.Errorf("Result = %+v", res)
	}
	if len(progress) != 3 || progress[0] != "Uploading adif/3.1.5/csv/enumerations_band.csv ..." {
		t.Errorf("progress = %v", progress)
	}

	data, err := os.ReadFile(filepath.Join(target, "adif-exports", "adif", "3.1.5", "json", "all.json"))
	if err != nil {
		t.Fatalf("uploaded object missing: %v", err)
	}
	if string(data) != `{"Adif":{"Version":"3.1.5"}}` {
		t.Errorf("object content = %q", data)
	}
	if ct := store.ContentTypes["adif/3.1.5/csv/enumerations_band.csv"]; ct != "text/csv; charset=utf-8" {
		t.Errorf("csv content type = %q", ct)
	}
}

func TestPublisher_NoVersion(t *testing.T) {
	p := New(NewLocalStore(t.TempDir()), "b")
	if _, err := p.Publish(context.Background(), t.TempDir(), ""); !errors.Is(err, ErrNoVersion) {
		t.Fatalf("error = %v, want ErrNoVersion", err)
	}
}

func TestPublisher_Cancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"csv/fields.csv": "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := New(NewLocalStore(t.TempDir()), "b")
	if _, err := p.Publish(ctx, root, "3.1.5"); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestLocalStore_RequiresBucket(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	if err := s.PutObject(context.Background(), "", "k", nil, ""); !errors.Is(err, ErrBucketRequired) {
		t.Fatalf("error = %v, want ErrBucketRequired", err)
	}
}

func TestExportVersion(t *testing.T) {
	root := writeTree(t, map[string]string{"json/all.json": `{"Adif":{"Version":"3.1.4","Status":"Released"}}`})
	v, err := ExportVersion(root)
	if err != nil || v != "3.1.4" {
		t.Errorf("ExportVersion() = %q, %v", v, err)
	}

	if _, err := ExportVersion(t.TempDir()); !errors.Is(err, ErrNoVersion) {
		t.Errorf("error = %v, want ErrNoVersion", err)
	}

	root = writeTree(t, map[string]string{"json/all.json": `{"Adif":{}}`})
	if _, err := ExportVersion(root); !errors.Is(err, ErrNoVersion) {
		t.Errorf("error = %v, want ErrNoVersion", err)
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "fields.CSV", data: "\"a\"", want: "text/csv; charset=utf-8"},
		{name: "all.yaml", data: "Adif: {}", want: "application/yaml; charset=utf-8"},
		{name: "notes.txt", data: "hello", want: "text/plain; charset=utf-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentType(tt.name, []byte(tt.data)); got != tt.want {
				t.Errorf("ContentType() = %q, want %q", got, tt.want)
			}
		})
	}
}
