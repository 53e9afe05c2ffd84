package statsapi

import (
	"errors"
	"fmt"
	"math"

	jsoniter "github.com/json-iterator/go"

	"github.com/haukened/overhead-display/internal/display/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrNotObject   = errors.New("response body is not a JSON object")
	ErrMissingHour = errors.New("peak entry missing hour")
	ErrMissingCnt  = errors.New("peak entry missing count")
)

// Stat field names of the stats endpoint.
const (
	fieldUptime        = "uptime"
	fieldTotalRequests = "totalRequests"
	fieldCacheHitRate  = "cacheHitRate"
	fieldErrors        = "errors"
	fieldUniqueClients = "uniqueClients"
	fieldCacheEntries  = "cacheEntries"
)

// DecodeStats decodes the stats endpoint body. Only a body that is not a JSON
// object is an error; every listed field falls back to its default when it is
// missing or has the wrong shape.
func DecodeStats(body []byte) (domain.StatSnapshot, error) {
	var fields map[string]jsoniter.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return domain.StatSnapshot{}, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	if fields == nil {
		return domain.StatSnapshot{}, ErrNotObject
	}

	s := domain.DefaultStatSnapshot()
	s.Uptime = textField(fields, fieldUptime, s.Uptime)
	s.TotalRequests = countField(fields, fieldTotalRequests, s.TotalRequests)
	s.CacheHitRate = textField(fields, fieldCacheHitRate, s.CacheHitRate)
	s.Errors = countField(fields, fieldErrors, s.Errors)
	s.UniqueClients = countField(fields, fieldUniqueClients, s.UniqueClients)
	s.CacheEntries = countField(fields, fieldCacheEntries, s.CacheEntries)
	return s, nil
}

func textField(fields map[string]jsoniter.RawMessage, name, def string) string {
	raw, ok := fields[name]
	if !ok {
		return def
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil || v == "" {
		return def
	}
	return v
}

// countField accepts non-negative integers, including integral floats such as 12.0.
func countField(fields map[string]jsoniter.RawMessage, name string, def int64) int64 {
	raw, ok := fields[name]
	if !ok {
		return def
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n < 0 {
			return def
		}
		return n
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return def
	}
	if f < 0 || f != math.Trunc(f) || f >= math.MaxInt64 {
		return def
	}
	return int64(f)
}

type peakPayload struct {
	Hours []hourPayload `json:"hours"`
}

type hourPayload struct {
	Hour    *int `json:"hour"`
	Count   *int `json:"count"`
	Current bool `json:"current"`
}

// DecodePeak decodes the peak endpoint body. Unlike stats, the series is all or
// nothing: any malformed entry rejects the whole body.
func DecodePeak(body []byte) (domain.PeakSeries, error) {
	var p peakPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return domain.PeakSeries{}, fmt.Errorf("decode peak: %w", err)
	}
	buckets := make([]domain.HourBucket, 0, len(p.Hours))
	for i, h := range p.Hours {
		if h.Hour == nil {
			return domain.PeakSeries{}, fmt.Errorf("%w: entry %d", ErrMissingHour, i)
		}
		if h.Count == nil {
			return domain.PeakSeries{}, fmt.Errorf("%w: entry %d", ErrMissingCnt, i)
		}
		buckets = append(buckets, domain.HourBucket{
			Hour:    *h.Hour,
			Count:   *h.Count,
			Current: h.Current,
		})
	}
	return domain.NewPeakSeries(buckets)
}
