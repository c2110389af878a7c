package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
)

// testEnv returns a non-interactive environment capturing output.
// The prompt fails the test if reached.
func testEnv(t *testing.T) (env *Environment, stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	env = &Environment{
		Now:        time.Now,
		Stdin:      strings.NewReader(""),
		Stdout:     stdout,
		Stderr:     stderr,
		IsTerminal: func() bool { return false },
		Confirm: func(string) (bool, error) {
			t.Error("unexpected confirmation prompt")
			return false, errors.New("unexpected prompt")
		},
	}
	return env, stdout, stderr
}

// writeComic creates a .cbz with n zero-padded JPEG pages.
func writeComic(t *testing.T, dir, name string, n int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	zw := zip.NewWriter(f)
	for i := 1; i <= n; i++ {
		w, err := zw.Create(fmt.Sprintf("%03d.jpg", i))
		if err != nil {
			t.Fatalf("adding page: %v", err)
		}
		img := image.NewRGBA(image.Rect(0, 0, 8, 12))
		for p := range img.Pix {
			img.Pix[p] = 0x80
		}
		img.Set(0, 0, color.Black)
		if err := jpeg.Encode(w, img, nil); err != nil {
			t.Fatalf("encoding page: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing file: %v", err)
	}
	return path
}

// writeFile creates a file with the given content.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// listDir returns the names in dir, or nil when it does not exist.
func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("reading %s: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Getuid() == 0 {
		t.Skip("root ignores file permissions")
	}
}
