package models

import "time"

type MediaStatus string

const (
	MediaStatusProcessing MediaStatus = "processing"
	MediaStatusReady      MediaStatus = "ready"
	MediaStatusFailed     MediaStatus = "failed"
)

type MediaType string

const (
	MediaTypeVideo MediaType = "video"
	MediaTypeImage MediaType = "image"
	MediaTypeEmbed MediaType = "embed" // externally hosted video (YouTube/Vimeo/direct file)
)

// Slyde is one vertically-scrolling microsite story owned by an organization.
type Slyde struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganizationID uint      `gorm:"index:idx_slydes_org_slug,unique;not null" json:"organization_id"`
	Slug           string    `gorm:"index:idx_slydes_org_slug,unique" json:"slug"`
	Title          string    `gorm:"not null" json:"title"`
	Position       int       `json:"position"`
	Published      bool      `json:"published"`
	Frames         []Frame   `gorm:"foreignKey:SlydeID;constraint:OnDelete:CASCADE" json:"frames,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Frame is a single screen within a Slyde. Media lives with the provider;
// the frame only carries the provider-assigned IDs and a transcode status.
type Frame struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	SlydeID     uint        `gorm:"index" json:"slyde_id"`
	Position    int         `json:"position"`
	Title       string      `json:"title"`
	Body        string      `json:"body"`
	MediaType   MediaType   `gorm:"type:VARCHAR(10)" json:"media_type"`
	MediaStatus MediaStatus `gorm:"type:VARCHAR(12);default:'ready'" json:"media_status"`
	VideoUID    string      `gorm:"index" json:"video_uid"` // Cloudflare Stream UID
	ImageID     string      `json:"image_id"`               // Cloudflare Images ID
	AudioURL    string      `json:"audio_url"`
	EmbedType   string      `json:"embed_type"` // youtube|vimeo|stream|direct
	EmbedURL    string      `json:"embed_url"`
	CTALabel    string      `json:"cta_label"`
	CTAURL      string      `json:"cta_url"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
