package models

import "time"

// KPIs summarizes the sampled videos. TotalViews is the sum over the sample
// only and is not the channel's lifetime view count.
type KPIs struct {
	Top          *VideoStatsRow `json:"top"`
	AverageViews uint64         `json:"averageViews"`
	TotalViews   uint64         `json:"totalViews"`
	SampleSize   int            `json:"sampleSize"`
}

// DailyViews is the summed view count of videos published on one UTC date
type DailyViews struct {
	Date  time.Time `json:"date"`
	Views uint64    `json:"views"`
}

// Day formats the bucket date for chart axes and tables.
func (d DailyViews) Day() string {
	return d.Date.Format("2006-01-02")
}
