package charts

import (
	"encoding/json"
	"math"
)

// JSON has no NaN, so missing values encode as null.
func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}

// MarshalJSON implements json.Marshaler.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Group    string   `json:"group"`
		Category string   `json:"category,omitempty"`
		Value    *float64 `json:"value"`
	}{p.Group, p.Category, nullable(p.Value)})
}

// MarshalJSON implements json.Marshaler.
func (p MapPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Label     string   `json:"label"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Category  string   `json:"category,omitempty"`
		Value     *float64 `json:"value"`
		Size      *float64 `json:"size"`
	}{p.Label, nullable(p.Latitude), nullable(p.Longitude), p.Category, nullable(p.Value), nullable(p.Size)})
}
