package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate_Metadata(t *testing.T) {
	for total := int64(0); total <= 45; total++ {
		for limit := 1; limit <= 12; limit++ {
			for page := 1; page <= 6; page++ {
				meta := Paginate([]int{}, total, page, limit, "").Meta
				require.NotNil(t, meta)

				expectedPages := int(math.Ceil(float64(total) / float64(limit)))
				assert.Equal(t, expectedPages, meta.PageCount, "total=%d limit=%d", total, limit)
				assert.Equal(t, page < expectedPages, meta.HasNext, "total=%d limit=%d page=%d", total, limit, page)
				assert.Equal(t, page > 1, meta.HasPrevious, "page=%d", page)
			}
		}
	}
}

func TestPaginate_ClampsLimit(t *testing.T) {
	meta := Paginate([]string{"a"}, 5, 1, 0, "").Meta
	assert.Equal(t, 1, meta.Limit)
	assert.Equal(t, 5, meta.PageCount)
	assert.True(t, meta.HasNext)
}

func TestPaginate_Envelope(t *testing.T) {
	res := Paginate[string](nil, 0, 1, 10, "companies retrieved")

	assert.True(t, res.Success)
	assert.Equal(t, "companies retrieved", res.Message)

	body, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"data": [],
		"meta": {"total": 0, "page": 1, "limit": 10, "pageCount": 0, "hasNext": false, "hasPrevious": false},
		"success": true,
		"message": "companies retrieved"
	}`, string(body))
}

func TestSuccess_OmitsMeta(t *testing.T) {
	body, err := json.Marshal(Success(map[string]int{"deletedCount": 3}, ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data": {"deletedCount": 3}, "success": true}`, string(body))
}
