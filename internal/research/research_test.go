package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/esearch.fcgi", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"esearchresult":{"idlist":["12345","67890"]}}`))
	})
	mux.HandleFunc("/efetch.fcgi", func(w http.ResponseWriter, r *http.Request) {
		title := "Semaglutide outcomes in adults with obesity"
		if r.URL.Query().Get("id") == "67890" {
			title = "Long-term weight management with GLP-1 agonists"
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(`<PubmedArticleSet><PubmedArticle><MedlineCitation><Article><ArticleTitle>` +
			title + `</ArticleTitle></Article></MedlineCitation></PubmedArticle></PubmedArticleSet>`))
	})
	mux.HandleFunc("/study_fields", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"StudyFieldsResponse":{"StudyFields":[
			{"BriefTitle":["STEP 1 Trial"],"Condition":["Obesity"],"OverallStatus":["Completed"],"URL":["https://clinicaltrials.gov/study/NCT03548935"]},
			{"BriefTitle":[],"Condition":[],"OverallStatus":[],"URL":[]}
		]}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestHub(t *testing.T) *Hub {
	srv := newTestServer(t)
	return NewHub(WithPubMedBaseURL(srv.URL), WithTrialsBaseURL(srv.URL))
}

func TestPubMed(t *testing.T) {
	h := newTestHub(t)
	articles := h.PubMed(context.Background())
	require.Len(t, articles, 2)
	assert.Contains(t, articles[0], "• Semaglutide outcomes in adults with obesity")
	assert.Contains(t, articles[0], "https://pubmed.ncbi.nlm.nih.gov/12345/")
	assert.Contains(t, articles[1], "GLP-1 agonists")
}

func TestPubMedFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	srv.Close() // connection refused

	h := NewHub(WithPubMedBaseURL(srv.URL), WithTrialsBaseURL(srv.URL))
	assert.Equal(t, []string{"⚠️ PubMed fetch failed."}, h.PubMed(context.Background()))
	assert.Equal(t, []string{"⚠️ ClinicalTrials.gov fetch failed."}, h.ClinicalTrials(context.Background()))
}

func TestPubMedNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"esearchresult":{"idlist":[]}}`))
	}))
	t.Cleanup(srv.Close)

	h := NewHub(WithPubMedBaseURL(srv.URL))
	assert.Equal(t, []string{"⚠️ No PubMed results."}, h.PubMed(context.Background()))
}

func TestClinicalTrials(t *testing.T) {
	h := newTestHub(t)
	trials := h.ClinicalTrials(context.Background())
	require.Len(t, trials, 2)
	assert.Contains(t, trials[0], "• STEP 1 Trial")
	assert.Contains(t, trials[0], "Condition: Obesity | Status: Completed")
	assert.Contains(t, trials[0], "https://clinicaltrials.gov/study/NCT03548935")
	// Missing fields fall back rather than panic.
	assert.Contains(t, trials[1], "• No title")
}

func TestClinicalTrialsNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"StudyFieldsResponse":{"StudyFields":[]}}`))
	}))
	t.Cleanup(srv.Close)

	h := NewHub(WithTrialsBaseURL(srv.URL))
	assert.Equal(t, []string{"⚠️ No clinical trials found."}, h.ClinicalTrials(context.Background()))
}
