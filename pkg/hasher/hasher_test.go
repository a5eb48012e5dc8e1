package hasher

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestFingerprint(t *testing.T) {
	fs := afero.NewMemMapFs()
	testFile := "/data/test.txt"
	if err := afero.WriteFile(fs, testFile, []byte("test content for hashing"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	hash, err := Fingerprint(fs, testFile)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}

	if len(hash) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(hash))
	}

	hash2, err := Fingerprint(fs, testFile)
	if err != nil {
		t.Fatalf("Fingerprint() second call error = %v", err)
	}

	if hash != hash2 {
		t.Error("Hash should be consistent for same file")
	}
}

func TestFingerprint_KnownDigest(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/abc", []byte("abc"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	hash, err := Fingerprint(fs, "/abc")
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}

	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if hash != want {
		t.Errorf("Fingerprint() = %s, want %s", hash, want)
	}
}

func TestFingerprint_DifferentContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := bytes.Repeat([]byte("x"), 200*1024)
	changed := append([]byte(nil), base...)
	changed[len(changed)-1] = 'y'

	if err := afero.WriteFile(fs, "/file1", base, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := afero.WriteFile(fs, "/file2", changed, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	hash1, err := Fingerprint(fs, "/file1")
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	hash2, err := Fingerprint(fs, "/file2")
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}

	if hash1 == hash2 {
		t.Error("Different content should produce different hashes")
	}
}

func TestFingerprint_NonExistentFile(t *testing.T) {
	_, err := Fingerprint(afero.NewMemMapFs(), "/non/existent/file.txt")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestFingerprint_LargeFileOnDisk(t *testing.T) {
	largeFile := filepath.Join(t.TempDir(), "large.bin")
	const fileSize = 3 * 1024 * 1024

	if err := os.WriteFile(largeFile, make([]byte, fileSize), 0644); err != nil {
		t.Fatalf("Failed to create large file: %v", err)
	}

	hash, err := Fingerprint(afero.NewOsFs(), largeFile)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if hash == "" {
		t.Error("Expected non-empty hash for large file")
	}
}

func TestHeadDigest_OnlyReadsPrefix(t *testing.T) {
	fs := afero.NewMemMapFs()
	prefix := bytes.Repeat([]byte("a"), 1024)

	if err := afero.WriteFile(fs, "/a", append(append([]byte(nil), prefix...), 'x'), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := afero.WriteFile(fs, "/b", append(append([]byte(nil), prefix...), 'y'), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	headA, err := HeadDigest(fs, "/a", 1024)
	if err != nil {
		t.Fatalf("HeadDigest() error = %v", err)
	}
	headB, err := HeadDigest(fs, "/b", 1024)
	if err != nil {
		t.Fatalf("HeadDigest() error = %v", err)
	}
	if headA != headB {
		t.Error("Files sharing the first 1024 bytes should share a head digest")
	}

	fullA, _ := HeadDigest(fs, "/a", 2048)
	fullB, _ := HeadDigest(fs, "/b", 2048)
	if fullA == fullB {
		t.Error("Digest over the differing byte should differ")
	}
}

func TestUnreadableFingerprint(t *testing.T) {
	fp := UnreadableFingerprint("/dl/locked.bin")

	if !IsUnreadable(fp) {
		t.Error("Expected IsUnreadable to recognise the fallback fingerprint")
	}
	if IsUnreadable("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad") {
		t.Error("A hex digest is not an unreadable fingerprint")
	}
	if fp == UnreadableFingerprint("/dl/other.bin") {
		t.Error("Different paths must produce different fallback fingerprints")
	}
}
