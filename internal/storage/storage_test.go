package storage

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("attachment", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["attachment"][0]
}

func TestUploader_SavesToLocalDisk(t *testing.T) {
	dir := t.TempDir()
	u := NewUploader(NewLocalStore(dir, "/static/uploads/"), 1<<20)

	obj, err := u.Save(context.Background(), "complaints", fileHeader(t, "photo of leak.png", pngHeader))
	require.NoError(t, err)

	assert.Equal(t, "image/png", obj.MimeType)
	assert.Equal(t, "photo of leak.png", obj.Name)
	assert.True(t, strings.HasPrefix(obj.Key, "complaints/"))
	assert.True(t, strings.HasSuffix(obj.Key, "_photo_of_leak.png"))
	assert.Equal(t, "/static/uploads/"+obj.Key, obj.URL)

	stored, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(obj.Key)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	require.NoError(t, u.Discard(context.Background(), obj.Key))
	require.NoError(t, u.Discard(context.Background(), obj.Key))
}

func TestUploader_Rejects(t *testing.T) {
	u := NewUploader(NewLocalStore(t.TempDir(), "/u"), 8)

	_, err := u.Save(context.Background(), "c", fileHeader(t, "a.png", pngHeader))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	u = NewUploader(NewLocalStore(t.TempDir(), "/u"), 1<<20)
	_, err = u.Save(context.Background(), "c", fileHeader(t, "run.sh", []byte("#!/bin/sh\necho hi\n")))
	assert.ErrorIs(t, err, ErrInvalidMimeType)

	_, err = u.Save(context.Background(), "c", fileHeader(t, "empty.png", nil))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

type mockS3 struct{ mock.Mock }

func (m *mockS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	if in.Body != nil {
		_, _ = io.Copy(io.Discard, in.Body)
	}
	return &s3.PutObjectOutput{}, args.Error(0)
}

func (m *mockS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, in)
	return &s3.DeleteObjectOutput{}, args.Error(0)
}

func TestS3Store_Put(t *testing.T) {
	client := new(mockS3)
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "attachments" && *in.Key == "complaints/x.pdf" && *in.ContentType == "application/pdf"
	})).Return(nil)

	store := NewS3Store(client, "attachments", "")
	url, err := store.Put(context.Background(), "complaints/x.pdf", strings.NewReader("%PDF-1.4"), 8, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://attachments.s3.amazonaws.com/complaints/x.pdf", url)
	client.AssertExpectations(t)
}

func TestS3Store_PublicBaseOverride(t *testing.T) {
	client := new(mockS3)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil)

	store := NewS3Store(client, "attachments", "https://cdn.example/")
	url, err := store.Put(context.Background(), "k", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/k", url)
}
