package minio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUploadRequest(t *testing.T) {
	valid := func() *UploadRequest {
		return &UploadRequest{
			BucketName:  "followup-reports",
			ObjectName:  "reports/d1/r.pdf",
			Reader:      strings.NewReader("pdf"),
			Size:        3,
			ContentType: "application/pdf",
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validateUploadRequest(valid()))
	})
	t.Run("leading slash", func(t *testing.T) {
		req := valid()
		req.ObjectName = "/reports/r.pdf"
		assert.Error(t, validateUploadRequest(req))
	})
	t.Run("empty body", func(t *testing.T) {
		req := valid()
		req.Size = 0
		assert.Error(t, validateUploadRequest(req))
	})
}

func TestValidateBucketName(t *testing.T) {
	assert.NoError(t, validateBucketName("followup-reports"))
	assert.Error(t, validateBucketName("ab"))
	assert.Error(t, validateBucketName("Upper"))
	assert.Error(t, validateBucketName("-edge"))
}

func TestValidateConfig_AddsPort(t *testing.T) {
	cfg := Config{Endpoint: "minio", AccessKey: "a", SecretKey: "s", Bucket: "b"}
	assert.NoError(t, validateConfig(&cfg))
	assert.Equal(t, "minio:9000", cfg.Endpoint)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewObjectNotFoundError("x")))
	assert.False(t, IsNotFound(NewInvalidInputError("x")))
}
