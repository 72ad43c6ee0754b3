package models

import "time"

// Lead is an inbound customer enquiry for an organization. Append-only,
// deduplicated per org by email.
type Lead struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganizationID uint      `gorm:"index:idx_leads_org_email,unique" json:"organization_id"`
	Email          string    `gorm:"index:idx_leads_org_email,unique;not null" json:"email"`
	Name           string    `json:"name"`
	Message        string    `json:"message"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
}

type WaitlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SiteVisit records one page view per hashed visitor per path per day.
type SiteVisit struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	OrganizationID uint   `gorm:"index" json:"organization_id"`
	VisitorHash    string `gorm:"index:idx_visits_daily,unique;type:VARCHAR(64)" json:"visitor_hash"`
	Path           string `gorm:"index:idx_visits_daily,unique" json:"path"`
	VisitDate      string `gorm:"index:idx_visits_daily,unique;type:VARCHAR(10)" json:"visit_date"` // YYYY-MM-DD (UTC)
	CreatedAt      time.Time `json:"created_at"`
}
