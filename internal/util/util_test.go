package util

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.00 KB", FormatSize(1024))
	assert.Equal(t, "1.50 MB", FormatSize(1536*1024))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID(uuid.NewString()))
	assert.True(t, IsUUID("6F9619FF-8B86-D011-B42D-00C04FC964FF"))
	assert.False(t, IsUUID("my project"))
	assert.False(t, IsUUID("urn:uuid:6f9619ff-8b86-d011-b42d-00c04fc964ff"))
	assert.False(t, IsUUID("6f9619ff-8b86-d011-b42d-00c04fc964fz"))
}
