package domain

// HoursPerDay is the fixed number of buckets in an hourly distribution.
const HoursPerDay = 24

// HourlyBucket is the activity weight attributed to one hour of the day.
type HourlyBucket struct {
	Hour   int     `json:"hour"`
	Weight float64 `json:"weight"`
}
