package assets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResourceType(t *testing.T) {
	cases := map[string]string{
		"notes.pdf":    "raw",
		"slides.PPTX":  "raw",
		"report.docx":  "raw",
		"portrait.jpg": "image",
		"banner.png":   "image",
		"no-extension": "image",
	}
	for fileName, want := range cases {
		if got := ResourceType(fileName); got != want {
			t.Fatalf("ResourceType(%q) = %q, want %q", fileName, got, want)
		}
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	if c := NewClient("", "key", "secret", "folder"); c != nil {
		t.Fatalf("missing cloud name should yield a nil client")
	}
	if c := NewClient("cloud", "key", "secret", "folder"); c == nil {
		t.Fatalf("complete credentials should yield a client")
	}
}

func TestUploadSignsAndParsesResponse(t *testing.T) {
	var gotPath string
	var gotSignature string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		gotSignature = r.FormValue("signature")
		json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://res.cloudinary.example/docs/syllabus.pdf",
			"public_id":  "test-folder/resources/syllabus",
		})
	}))
	defer srv.Close()

	client := NewClient("demo", "key", "secret", "test-folder")
	client.SetBaseURL(srv.URL)

	asset, err := client.Upload(context.Background(), "syllabus.pdf", strings.NewReader("%PDF-1.4"), "resources")
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if asset.URL != "https://res.cloudinary.example/docs/syllabus.pdf" {
		t.Fatalf("unexpected url %q", asset.URL)
	}
	if asset.PublicID != "test-folder/resources/syllabus" {
		t.Fatalf("unexpected public id %q", asset.PublicID)
	}
	if gotPath != "/demo/raw/upload" {
		t.Fatalf("pdf must upload as raw, got path %q", gotPath)
	}
	if gotSignature == "" {
		t.Fatalf("upload request must be signed")
	}
}

func TestUploadSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Invalid Signature"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("demo", "key", "secret", "test-folder")
	client.SetBaseURL(srv.URL)

	_, err := client.Upload(context.Background(), "photo.png", strings.NewReader("data"), "")
	if err == nil {
		t.Fatalf("expected error on 401 response")
	}
	if !strings.Contains(err.Error(), "status=401") {
		t.Fatalf("error should carry the status, got %v", err)
	}
}

func TestDestroyFallsBackToRaw(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		result := "not found"
		if strings.Contains(r.URL.Path, "/raw/") {
			result = "ok"
		}
		json.NewEncoder(w).Encode(map[string]string{"result": result})
	}))
	defer srv.Close()

	client := NewClient("demo", "key", "secret", "test-folder")
	client.SetBaseURL(srv.URL)

	if err := client.Destroy(context.Background(), "test-folder/resources/syllabus"); err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected image then raw attempts, got %v", paths)
	}
	if !strings.Contains(paths[0], "/image/") || !strings.Contains(paths[1], "/raw/") {
		t.Fatalf("expected image first then raw, got %v", paths)
	}
}

func TestDestroyMissingAsset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"result": "not found"})
	}))
	defer srv.Close()

	client := NewClient("demo", "key", "secret", "test-folder")
	client.SetBaseURL(srv.URL)

	if err := client.Destroy(context.Background(), "gone"); err == nil {
		t.Fatalf("expected error when the asset exists nowhere")
	}
}
