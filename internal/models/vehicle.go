package models

// Vehicle represents a fleet vehicle as shown on the dashboard.
type Vehicle struct {
	ID          int      `bson:"_id" json:"id"`
	Number      string   `bson:"number" json:"number"`
	Supervisor  string   `bson:"supervisor" json:"supervisor"`
	Location    Location `bson:"location" json:"location"`
	LastUpdated string   `bson:"last_updated" json:"lastUpdated"` // RFC 3339 instant
}
