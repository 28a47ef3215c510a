package webhook

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventNewsViewed is sent after every successful article detail read
	EventNewsViewed = "news.viewed"

	// UserAgent identifies outbound webhook requests
	UserAgent = "NewsAPI-Webhook/1.0"
)

// Payload is the JSON body posted to a publisher's webhook URL
type Payload struct {
	Event     string         `json:"event"`
	Timestamp string         `json:"timestamp"`
	Data      NewsViewedData `json:"data"`
}

type NewsViewedData struct {
	NewsID    string `json:"newsId"`
	NewsTitle string `json:"newsTitle"`
	ViewCount int    `json:"viewCount"`
}

// Notification is one delivery: where to send and what
type Notification struct {
	URL     string  `json:"url"`
	Payload Payload `json:"event"`
}

// NewsViewed builds the notification for a detail read
func NewsViewed(url string, newsID uuid.UUID, title string, viewCount int, at time.Time) Notification {
	return Notification{
		URL: url,
		Payload: Payload{
			Event:     EventNewsViewed,
			Timestamp: at.UTC().Format(time.RFC3339Nano),
			Data: NewsViewedData{
				NewsID:    newsID.String(),
				NewsTitle: title,
				ViewCount: viewCount,
			},
		},
	}
}
