package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PageView is one page load inside a browser session.
type PageView struct {
	Path      string    `bson:"path" json:"path"`
	Title     string    `bson:"title,omitempty" json:"title,omitempty"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Duration  int       `bson:"duration,omitempty" json:"duration,omitempty"`
}

// Visit is the analytics record for one browser session, keyed by SessionID.
// Country, City and Region are filled in after creation by geo-IP enrichment.
type Visit struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID    string             `bson:"session_id" json:"sessionId"`
	VisitorID    string             `bson:"visitor_id" json:"visitorId"`
	IPAddress    string             `bson:"ip_address" json:"ipAddress"`
	Country      string             `bson:"country,omitempty" json:"country,omitempty"`
	City         string             `bson:"city,omitempty" json:"city,omitempty"`
	Region       string             `bson:"region,omitempty" json:"region,omitempty"`
	Device       string             `bson:"device" json:"device"`
	Browser      string             `bson:"browser" json:"browser"`
	OS           string             `bson:"os" json:"os"`
	Referrer     string             `bson:"referrer,omitempty" json:"referrer,omitempty"`
	PageViews    []PageView         `bson:"page_views" json:"pageViews"`
	EntryPage    string             `bson:"entry_page" json:"entryPage"`
	ExitPage     string             `bson:"exit_page" json:"exitPage"`
	LastActivity time.Time          `bson:"last_activity" json:"lastActivity"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
