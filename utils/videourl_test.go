package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVideoURLYouTube(t *testing.T) {
	for _, raw := range []string{
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
	} {
		v := ParseVideoURL(raw)
		require.NotNil(t, v, raw)
		assert.Equal(t, "youtube", v.Type)
		assert.Equal(t, "dQw4w9WgXcQ", v.ID)
		assert.Contains(t, v.EmbedURL, "dQw4w9WgXcQ")
	}
}

func TestParseVideoURLVimeo(t *testing.T) {
	v := ParseVideoURL("https://vimeo.com/123456789")
	require.NotNil(t, v)
	assert.Equal(t, "vimeo", v.Type)
	assert.Equal(t, "https://player.vimeo.com/video/123456789", v.EmbedURL)
}

func TestParseVideoURLStream(t *testing.T) {
	uid := "5d5bc37ffcf54c9b82e996823bffbb81"
	v := ParseVideoURL("https://customer-x.cloudflarestream.com/" + uid + "/manifest/video.m3u8")
	require.NotNil(t, v)
	assert.Equal(t, "stream", v.Type)
	assert.Equal(t, uid, v.ID)
}

func TestParseVideoURLDirect(t *testing.T) {
	v := ParseVideoURL("https://cdn.example.com/clip.mp4")
	require.NotNil(t, v)
	assert.Equal(t, "direct", v.Type)
	assert.Equal(t, "https://cdn.example.com/clip.mp4", v.EmbedURL)
}

func TestParseVideoURLUnrecognized(t *testing.T) {
	assert.Nil(t, ParseVideoURL("not a url"))
	assert.Nil(t, ParseVideoURL(""))
	assert.Nil(t, ParseVideoURL("https://example.com/page"))
}
