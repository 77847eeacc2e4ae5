package models

// ChannelSummary represents a YouTube channel as shown in the dashboard header
type ChannelSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl,omitempty"`
	Subscribers uint64 `json:"subscriberCount"`
	Views       uint64 `json:"viewCount"`
	Videos      uint64 `json:"videoCount"`
	Country     string `json:"country,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
}
