package jobs

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAdzunaSearch(t *testing.T) {
	var got *http.Request
	body := `{"count": 2, "results": [
		{"id": "123", "title": "Node Developer", "company": {"display_name": "Globex"},
		 "description": "<b>Node.js</b> and Express, 3 years", "location": {"display_name": "Noida"},
		 "contract_type": "permanent", "redirect_url": "https://adzuna/1", "created": "2024-05-01T00:00:00Z",
		 "salary_min": 600000, "salary_max": 900000},
		{"id": 456}
	]}`
	srv := newJSearchServer(t, http.StatusOK, body, func(r *http.Request) { got = r })

	src := NewAdzuna(AdzunaConfig{AppID: "id", AppKey: "key", Endpoint: srv.URL}, 0, zap.NewNop())
	listings, err := src.Search(context.Background(), []string{"Node.js", "Express"}, "Noida")
	require.NoError(t, err)
	require.Len(t, listings, 2)

	q := got.URL.Query()
	assert.Equal(t, "id", q.Get("app_id"))
	assert.Equal(t, "key", q.Get("app_key"))
	assert.Equal(t, "50", q.Get("results_per_page"))
	assert.Equal(t, "Node.js Express", q.Get("what"))
	assert.Equal(t, "Noida", q.Get("where"))
	assert.Equal(t, "application/json", q.Get("content-type"))

	first := listings[0]
	assert.Equal(t, "adzuna-123", first.ID)
	assert.Equal(t, "Globex", first.Company)
	assert.Equal(t, "Node.js and Express, 3 years", first.Description)
	assert.Equal(t, []string{"Node.js", "Express"}, first.RequiredSkills)
	assert.Equal(t, "₹6,00,000 - ₹9,00,000", first.SalaryRange)
	assert.Equal(t, "3+ years", first.Experience)
	assert.Equal(t, "permanent", first.Type)
	assert.Equal(t, "https://adzuna/1", first.URL)
	assert.Equal(t, "2024-05-01T00:00:00Z", first.PostedDate)

	second := listings[1]
	assert.Equal(t, "adzuna-456", second.ID)
	assert.Equal(t, DefaultTitle, second.Title)
	assert.Equal(t, DefaultCompany, second.Company)
	assert.Equal(t, "Noida", second.Location)
	assert.Equal(t, DefaultType, second.Type)
	assert.Equal(t, NotDisclosed, second.SalaryRange)
}

func TestAdzunaKeepsItemsWithMistypedFields(t *testing.T) {
	body := `{"results": [
		{"id": "1", "title": "Go Developer", "salary_min": "negotiable", "salary_max": 900000},
		{"id": "2", "title": "SRE", "company": "Initech", "location": {"display_name": "Chennai"}}
	]}`
	srv := newJSearchServer(t, http.StatusOK, body, nil)

	src := NewAdzuna(AdzunaConfig{AppID: "id", AppKey: "key", Endpoint: srv.URL}, 0, zap.NewNop())
	listings, err := src.Search(context.Background(), []string{"Go"}, "India")
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, "Go Developer", listings[0].Title)
	assert.Equal(t, "Up to ₹9,00,000", listings[0].SalaryRange)

	assert.Equal(t, "adzuna-2", listings[1].ID)
	assert.Equal(t, DefaultCompany, listings[1].Company)
	assert.Equal(t, "Chennai", listings[1].Location)
}

func TestAdzunaMissingCredentials(t *testing.T) {
	_, err := NewAdzuna(AdzunaConfig{AppID: "id"}, 0, zap.NewNop()).Search(context.Background(), nil, "India")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestRedactHidesCredentials(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "https://example.com/search?app_id=a&app_key=b&what=go", nil)
	require.NoError(t, err)

	out := redact(req.URL)
	assert.NotContains(t, out, "app_key=b")
	assert.Contains(t, out, "what=go")
}
