package utils

import (
	"regexp"
	"strings"
)

// VideoEmbed is the normalized result of parsing an external video URL.
type VideoEmbed struct {
	Type     string `json:"type"` // youtube|vimeo|stream|direct
	ID       string `json:"id,omitempty"`
	EmbedURL string `json:"embed_url"`
}

var (
	youtubeRe = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|shorts/|embed/)|youtu\.be/)([A-Za-z0-9_-]{11})`)
	vimeoRe   = regexp.MustCompile(`vimeo\.com/(?:video/)?(\d+)`)
	streamRe  = regexp.MustCompile(`(?:videodelivery\.net|cloudflarestream\.com)/([0-9a-f]{32})`)
	directRe  = regexp.MustCompile(`(?i)\.(?:mp4|webm|mov|m3u8)(?:\?\S*)?$`)
)

// ParseVideoURL dispatches a pasted URL to a known video host shape.
// Unrecognized input returns nil.
func ParseVideoURL(raw string) *VideoEmbed {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, " \t") {
		return nil
	}
	if m := youtubeRe.FindStringSubmatch(raw); m != nil {
		return &VideoEmbed{Type: "youtube", ID: m[1], EmbedURL: "https://www.youtube.com/embed/" + m[1]}
	}
	if m := vimeoRe.FindStringSubmatch(raw); m != nil {
		return &VideoEmbed{Type: "vimeo", ID: m[1], EmbedURL: "https://player.vimeo.com/video/" + m[1]}
	}
	if m := streamRe.FindStringSubmatch(raw); m != nil {
		return &VideoEmbed{Type: "stream", ID: m[1], EmbedURL: "https://iframe.videodelivery.net/" + m[1]}
	}
	if directRe.MatchString(raw) {
		return &VideoEmbed{Type: "direct", EmbedURL: raw}
	}
	return nil
}
