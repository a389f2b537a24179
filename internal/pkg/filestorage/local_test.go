package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func uploadedFile(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("document", name)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	w.Close()

	req, err := http.NewRequest(http.MethodPost, "/", &buf)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("ParseMultipartForm() error = %v", err)
	}
	return req.MultipartForm.File["document"][0]
}

func TestLocalStorage(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base)
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}

	t.Run("save issues a scoped key", func(t *testing.T) {
		key, err := storage.SaveDocument(uploadedFile(t, "transcript.pdf", "content"), "transcript", "890101234")
		if err != nil {
			t.Fatalf("SaveDocument() error = %v", err)
		}
		if !strings.HasPrefix(key, "890101234/transcript/") {
			t.Errorf("key = %q, want owner/docType prefix", key)
		}
		if filepath.Ext(key) != ".pdf" {
			t.Errorf("key = %q, want .pdf extension", key)
		}

		data, err := os.ReadFile(storage.FullPath(key))
		if err != nil {
			t.Fatalf("reading stored file: %v", err)
		}
		if string(data) != "content" {
			t.Errorf("stored content = %q", data)
		}
	})

	t.Run("delete removes the file", func(t *testing.T) {
		key, err := storage.SaveDocument(uploadedFile(t, "cpr.pdf", "x"), "cpr", "890101234")
		if err != nil {
			t.Fatalf("SaveDocument() error = %v", err)
		}
		if err := storage.DeleteDocument(key); err != nil {
			t.Fatalf("DeleteDocument() error = %v", err)
		}
		if _, err := os.Stat(storage.FullPath(key)); !os.IsNotExist(err) {
			t.Error("file still present after delete")
		}

		// Deleting an absent key is not an error.
		if err := storage.DeleteDocument(key); err != nil {
			t.Errorf("second DeleteDocument() error = %v", err)
		}
	})

	t.Run("traversal keys stay under the base path", func(t *testing.T) {
		full := storage.FullPath("../../etc/passwd")
		if !strings.HasPrefix(full, base) {
			t.Errorf("FullPath() = %q escaped the base path", full)
		}
	})
}
