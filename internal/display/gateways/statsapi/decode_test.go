package statsapi

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/overhead-display/internal/display/domain"
)

func TestDecodeStats_Full(t *testing.T) {
	body := []byte(`{
		"uptime": "2h 5m",
		"totalRequests": 120,
		"cacheHits": 96,
		"cacheHitRate": "80.0%",
		"errors": 0,
		"uniqueClients": 5,
		"cacheEntries": 10
	}`)

	s, err := DecodeStats(body)
	require.NoError(t, err)
	assert.Equal(t, domain.StatSnapshot{
		Uptime:        "2h 5m",
		TotalRequests: 120,
		CacheHitRate:  "80.0%",
		Errors:        0,
		UniqueClients: 5,
		CacheEntries:  10,
	}, s)
}

func TestDecodeStats_FieldDefaults(t *testing.T) {
	tests := []struct {
		name string
		body string
		want domain.StatSnapshot
	}{
		{
			name: "empty object",
			body: `{}`,
			want: domain.DefaultStatSnapshot(),
		},
		{
			name: "wrong types",
			body: `{"uptime": 5, "totalRequests": "many", "cacheHitRate": false, "errors": [1]}`,
			want: domain.DefaultStatSnapshot(),
		},
		{
			name: "nulls",
			body: `{"uptime": null, "errors": null, "uniqueClients": null}`,
			want: domain.DefaultStatSnapshot(),
		},
		{
			name: "negative and fractional counters",
			body: `{"errors": -3, "uniqueClients": 2.5, "cacheEntries": -0.5}`,
			want: domain.DefaultStatSnapshot(),
		},
		{
			name: "integral floats accepted",
			body: `{"totalRequests": 12.0, "cacheEntries": 1000.0}`,
			want: func() domain.StatSnapshot {
				s := domain.DefaultStatSnapshot()
				s.TotalRequests = 12
				s.CacheEntries = 1000
				return s
			}(),
		},
		{
			name: "empty strings use placeholder",
			body: `{"uptime": "", "cacheHitRate": "", "errors": 3}`,
			want: func() domain.StatSnapshot {
				s := domain.DefaultStatSnapshot()
				s.Errors = 3
				return s
			}(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeStats([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeStats_NotAnObject(t *testing.T) {
	for _, body := range []string{``, `null`, `[]`, `"stats"`, `42`, `{"uptime":`} {
		t.Run(body, func(t *testing.T) {
			_, err := DecodeStats([]byte(body))
			assert.ErrorIs(t, err, ErrNotObject)
		})
	}
}

func peakBody(mutate func(i int) string) string {
	entries := make([]string, 0, 24)
	for i := 0; i < 24; i++ {
		entries = append(entries, mutate(i))
	}
	return `{"hours":[` + strings.Join(entries, ",") + `],"total":0,"peakHour":0}`
}

func TestDecodePeak_Valid(t *testing.T) {
	body := peakBody(func(i int) string {
		return fmt.Sprintf(`{"hour":%d,"label":"%02d:00","count":%d,"pct":"0.0","bar":0,"current":%t}`, i, i, i*3, i == 14)
	})

	series, err := DecodePeak([]byte(body))
	require.NoError(t, err)

	buckets := series.Buckets()
	require.Len(t, buckets, 24)
	assert.Equal(t, domain.HourBucket{Hour: 14, Count: 42, Current: true}, buckets[14])
	assert.Equal(t, domain.HourBucket{Hour: 3, Count: 9}, buckets[3])
}

func TestDecodePeak_MissingCurrentDefaultsFalse(t *testing.T) {
	body := peakBody(func(i int) string {
		return fmt.Sprintf(`{"hour":%d,"count":1}`, i)
	})

	series, err := DecodePeak([]byte(body))
	require.NoError(t, err)
	for _, b := range series.Buckets() {
		assert.False(t, b.Current)
	}
}

func TestDecodePeak_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "not json", body: `nope`},
		{name: "no hours", body: `{}`, wantErr: domain.ErrBucketCount},
		{name: "null hours", body: `{"hours":null}`, wantErr: domain.ErrBucketCount},
		{name: "short series", body: `{"hours":[{"hour":0,"count":1}]}`, wantErr: domain.ErrBucketCount},
		{
			name: "missing hour",
			body: peakBody(func(i int) string {
				if i == 4 {
					return `{"count":1}`
				}
				return fmt.Sprintf(`{"hour":%d,"count":1}`, i)
			}),
			wantErr: ErrMissingHour,
		},
		{
			name: "missing count",
			body: peakBody(func(i int) string {
				if i == 9 {
					return `{"hour":9}`
				}
				return fmt.Sprintf(`{"hour":%d,"count":1}`, i)
			}),
			wantErr: ErrMissingCnt,
		},
		{
			name: "duplicate hour",
			body: peakBody(func(i int) string {
				if i == 23 {
					return `{"hour":0,"count":1}`
				}
				return fmt.Sprintf(`{"hour":%d,"count":1}`, i)
			}),
			wantErr: domain.ErrDuplicateHour,
		},
		{
			name: "negative count",
			body: peakBody(func(i int) string {
				return fmt.Sprintf(`{"hour":%d,"count":%d}`, i, -i)
			}),
			wantErr: domain.ErrNegativeCount,
		},
		{
			name: "string count",
			body: peakBody(func(i int) string {
				return fmt.Sprintf(`{"hour":%d,"count":"%d"}`, i, i)
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePeak([]byte(tt.body))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
