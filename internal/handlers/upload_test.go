package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func multipartImageRequest(t *testing.T, filename string, size int) *multipart.FileHeader {
	t.Helper()

	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte{0xAB}, size)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/admin/api/uploads", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	file, err := c.FormFile("image")
	if err != nil {
		t.Fatalf("FormFile returned error: %v", err)
	}
	return file
}

func TestValidateImageUpload_AcceptsKnownExtensions(t *testing.T) {
	cases := map[string]string{
		"design.jpg":  "image/jpeg",
		"design.JPEG": "image/jpeg",
		"fabric.png":  "image/png",
		"fabric.webp": "image/webp",
	}

	for filename, want := range cases {
		file := multipartImageRequest(t, filename, 128)
		contentType, err := validateImageUpload(file)
		if err != nil {
			t.Fatalf("%s rejected: %v", filename, err)
		}
		if contentType != want {
			t.Fatalf("%s: expected %s, got %s", filename, want, contentType)
		}
	}
}

func TestValidateImageUpload_RejectsUnknownExtension(t *testing.T) {
	file := multipartImageRequest(t, "malware.exe", 128)
	if _, err := validateImageUpload(file); err == nil {
		t.Fatal("expected extension error")
	}
}

func TestValidateImageUpload_RejectsMissingExtension(t *testing.T) {
	file := multipartImageRequest(t, "design", 128)
	if _, err := validateImageUpload(file); err == nil {
		t.Fatal("expected extension error")
	}
}

func TestValidateImageUpload_RejectsNonImageContentType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	// CreateFormFile declares application/octet-stream
	part, err := writer.CreateFormFile("image", "design.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write([]byte{0xAB})
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/admin/api/uploads", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	file, err := c.FormFile("image")
	if err != nil {
		t.Fatalf("FormFile returned error: %v", err)
	}
	if _, err := validateImageUpload(file); err == nil {
		t.Fatal("expected content type error")
	}
}

func TestValidateImageUpload_RejectsOversizedFile(t *testing.T) {
	file := multipartImageRequest(t, "design.png", 16)
	file.Size = maxImageSize + 1
	if _, err := validateImageUpload(file); err == nil {
		t.Fatal("expected size error")
	}
}

func TestUploadObjectKey(t *testing.T) {
	key := uploadObjectKey("designs", ".png")
	if !strings.HasPrefix(key, "uploads/designs/") {
		t.Fatalf("unexpected key prefix: %s", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected key suffix: %s", key)
	}
	if key == uploadObjectKey("designs", ".png") {
		t.Fatal("expected unique keys per call")
	}
}
