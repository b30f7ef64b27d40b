package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangashelf/mangashelf/internal/entities"
)

type titlePage struct {
	Data    []entities.TitleSummary `json:"data"`
	Total   int64                   `json:"total"`
	Page    int                     `json:"page"`
	HasMore bool                    `json:"has_more"`
}

func TestTitlesController_List(t *testing.T) {
	s := newTestServer(t, nil)
	s.seed(t)

	w := s.do(t, "GET", "/api/titles", "")
	require.Equal(t, http.StatusOK, w.Code)

	page := decode[titlePage](t, w)
	require.Len(t, page.Data, 2)
	assert.Equal(t, int64(2), page.Total)
	assert.False(t, page.HasMore)

	berserk := page.Data[0]
	assert.Equal(t, "Berserk", berserk.Name)
	assert.Equal(t, "Kentaro Miura", berserk.Artist)
	assert.Equal(t, []string{"Action", "Dark Fantasy"}, berserk.Genres)
	assert.Equal(t, int64(2), berserk.ChapterCount)
	assert.Equal(t, testStaticBaseURL+"/Berserk/cover.jpg", berserk.CoverURL)

	assert.Equal(t, "Claymore", page.Data[1].Name)
	assert.Equal(t, []string{"Unknown"}, page.Data[1].Genres)
}

func TestTitlesController_ListEmptyLibrary(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, "GET", "/api/titles", "")

	require.Equal(t, http.StatusOK, w.Code)
	page := decode[titlePage](t, w)
	assert.Empty(t, page.Data)
	assert.Zero(t, page.Total)
}

func TestTitlesController_ListFilters(t *testing.T) {
	s := newTestServer(t, nil)
	s.seed(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"query on artist", "?q=miura", []string{"Berserk"}},
		{"single genre", "?genre=Unknown", []string{"Claymore"}},
		{"all genres required", "?genre=Action&genre=Unknown", nil},
		{"comma separated genres", "?genre=Action,Dark%20Fantasy", []string{"Berserk"}},
		{"favorites only", "?favorites=true", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, "GET", "/api/titles"+tt.query, "")
			require.Equal(t, http.StatusOK, w.Code)

			var names []string
			for _, title := range decode[titlePage](t, w).Data {
				names = append(names, title.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestTitlesController_ListPagination(t *testing.T) {
	s := newTestServer(t, nil)
	s.seed(t)

	w := s.do(t, "GET", "/api/titles?page=2&limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	page := decode[titlePage](t, w)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Claymore", page.Data[0].Name)
	assert.Equal(t, 2, page.Page)
	assert.False(t, page.HasMore)
}

func TestTitlesController_ListPageBeyondEnd(t *testing.T) {
	s := newTestServer(t, nil)
	s.seed(t)

	w := s.do(t, "GET", "/api/titles?page=9223372036854775807&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	page := decode[titlePage](t, w)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(2), page.Total)
	assert.False(t, page.HasMore)
}

func TestTitlesController_ListInvalidParams(t *testing.T) {
	s := newTestServer(t, nil)

	assert.Equal(t, http.StatusBadRequest, s.do(t, "GET", "/api/titles?favorites=maybe", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, "GET", "/api/titles?page=-1", "").Code)
}

func TestTitlesController_Genres(t *testing.T) {
	s := newTestServer(t, nil)
	s.seed(t)

	w := s.do(t, "GET", "/api/genres", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string][]string](t, w)
	assert.Equal(t, []string{"Action", "Dark Fantasy", "Unknown"}, body["genres"])
}

func TestTitlesController_Get(t *testing.T) {
	s := newTestServer(t, nil)
	s.seed(t)

	t.Run("returns title with chapters", func(t *testing.T) {
		w := s.do(t, "GET", "/api/titles/1", "")
		require.Equal(t, http.StatusOK, w.Code)

		detail := decode[entities.TitleDetail](t, w)
		assert.Equal(t, "Berserk", detail.Name)
		assert.Equal(t, "A lone mercenary.", detail.Summary)
		require.Len(t, detail.Chapters, 2)
		assert.Equal(t, "Vol 1", detail.Chapters[0].Name)
		assert.Equal(t, 1, detail.Chapters[0].Index)
		assert.Equal(t, 2, detail.Chapters[0].PageCount)
	})

	t.Run("unknown title is 404", func(t *testing.T) {
		w := s.do(t, "GET", "/api/titles/999", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "title not found")
	})

	t.Run("invalid id is 400", func(t *testing.T) {
		w := s.do(t, "GET", "/api/titles/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
