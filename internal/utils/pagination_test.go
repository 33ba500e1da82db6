package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
		wantClamped  bool
		wantErr      bool
	}{
		{name: "defaults", query: "", wantPage: 1, wantPageSize: DefaultPageSize},
		{name: "explicit values", query: "page=3&page_size=25", wantPage: 3, wantPageSize: 25},
		{name: "page_size clamped to ceiling", query: "page_size=500", wantPage: 1, wantPageSize: MaxPageSize, wantClamped: true},
		{name: "page_size at ceiling not clamped", query: "page_size=100", wantPage: 1, wantPageSize: 100},
		{name: "non-numeric page rejected", query: "page=abc", wantErr: true},
		{name: "zero page rejected", query: "page=0", wantErr: true},
		{name: "negative page_size rejected", query: "page_size=-5", wantErr: true},
		{name: "non-numeric page_size rejected", query: "page_size=ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := GetPaginationParams(queryContext(t, tt.query))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantPage, params.Page)
			require.Equal(t, tt.wantPageSize, params.PageSize)
			require.Equal(t, tt.wantClamped, params.Clamped)
		})
	}
}

func TestGetUserPaginationParams(t *testing.T) {
	params, err := GetUserPaginationParams(queryContext(t, ""))
	require.NoError(t, err)
	require.Equal(t, UserDefaultPageSize, params.PageSize)

	params, err = GetUserPaginationParams(queryContext(t, "page_size=200"))
	require.NoError(t, err)
	require.Equal(t, UserMaxPageSize, params.PageSize)
	require.True(t, params.Clamped)
}

func TestFindOptions(t *testing.T) {
	sort := bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
	opts := (&PaginationParams{Page: 3, PageSize: 20}).FindOptions(sort)

	require.NotNil(t, opts.Skip)
	require.Equal(t, int64(40), *opts.Skip)
	require.NotNil(t, opts.Limit)
	require.Equal(t, int64(20), *opts.Limit)
	require.Equal(t, sort, opts.Sort)
}

func TestCreatePaginationMeta(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		total        int64
		wantPages    int
		wantNext     *int
		wantPrevious *int
	}{
		{name: "first of three pages", page: 1, pageSize: 10, total: 25, wantPages: 3, wantNext: intPtr(2)},
		{name: "middle page", page: 2, pageSize: 10, total: 25, wantPages: 3, wantNext: intPtr(3), wantPrevious: intPtr(1)},
		{name: "last page", page: 3, pageSize: 10, total: 25, wantPages: 3, wantPrevious: intPtr(2)},
		{name: "empty dataset", page: 1, pageSize: 10, total: 0, wantPages: 0},
		{name: "exact page boundary", page: 1, pageSize: 10, total: 10, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := CreatePaginationMeta(&PaginationParams{Page: tt.page, PageSize: tt.pageSize}, tt.total)
			require.Equal(t, tt.wantPages, meta.TotalPages)
			require.Equal(t, tt.total, meta.Total)
			require.Equal(t, tt.wantNext, meta.NextPage)
			require.Equal(t, tt.wantPrevious, meta.PreviousPage)
		})
	}
}

func TestPageSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []int
	}{
		{name: "first page", page: 1, pageSize: 3, want: []int{1, 2, 3}},
		{name: "middle page", page: 2, pageSize: 3, want: []int{4, 5, 6}},
		{name: "short final page", page: 3, pageSize: 3, want: []int{7}},
		{name: "page past the end is empty", page: 4, pageSize: 3, want: []int{}},
		{name: "page size covering everything", page: 1, pageSize: 100, want: items},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageSlice(items, &PaginationParams{Page: tt.page, PageSize: tt.pageSize})
			require.Equal(t, tt.want, got)
		})
	}
}

func intPtr(n int) *int {
	return &n
}
