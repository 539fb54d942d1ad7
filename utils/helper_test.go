package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2021-03-04", want: time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)},
		{in: " 2021-03-04 ", want: time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)},
		{in: "2021-03-04T15:30:00Z", want: time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)},
		{in: "04.03.2021", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseDate(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAttachmentDisposition(t *testing.T) {
	got := AttachmentDisposition("звіт 1.pdf")
	want := "attachment; filename*=UTF-8''%D0%B7%D0%B2%D1%96%D1%82%201.pdf"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestContentTypeForFilename(t *testing.T) {
	cases := map[string]string{
		"a.PDF":     "application/pdf",
		"scan.jpeg": "image/jpeg",
		"plan.dwg":  "application/acad",
		"noext":     "application/octet-stream",
		"x.weird":   "application/octet-stream",
	}
	for name, want := range cases {
		if got := ContentTypeForFilename(name); got != want {
			t.Fatalf("ContentTypeForFilename(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestDetectDocumentContentType(t *testing.T) {
	pdf := []byte("%PDF-1.4\n...")
	if ct, err := DetectDocumentContentType("report.pdf", pdf); err != nil || ct != "application/pdf" {
		t.Fatalf("pdf: got %q, %v", ct, err)
	}
	zipHeader := []byte("PK\x03\x04rest-of-archive")
	if ct, err := DetectDocumentContentType("table.xlsx", zipHeader); err != nil || ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("xlsx: got %q, %v", ct, err)
	}
	if ct, err := DetectDocumentContentType("notes.txt", []byte("plain text")); err != nil || ct != "text/plain" {
		t.Fatalf("txt: got %q, %v", ct, err)
	}
	if _, err := DetectDocumentContentType("page.html", []byte("<html><body>x</body></html>")); err == nil {
		t.Fatalf("expected html to be rejected")
	}
}

func TestMemoryBlobStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryBlobStore()
	if err := s.Put(ctx, "k", []byte("v"), "text/plain"); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("get: %q, %v", got, err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrorRecordNotFound) {
		t.Fatalf("expected ErrorRecordNotFound, got %v", err)
	}
}

func TestNilIfEmpty(t *testing.T) {
	if NilIfEmpty("") != nil {
		t.Fatalf("expected nil for empty string")
	}
	if p := NilIfEmpty("x"); p == nil || *p != "x" {
		t.Fatalf("expected pointer to x")
	}
}
