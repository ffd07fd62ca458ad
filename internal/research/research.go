// Package research implements the Knowledge Hub lookups against PubMed and
// ClinicalTrials.gov.
//
// Both lookups are independent, best-effort reads with a short timeout. On
// any failure they degrade to a fixed placeholder line; errors never reach
// the patient and there are no retries.
package research

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// Defaults for the external lookups.
const (
	DefaultTimeout     = 10 * time.Second
	DefaultMaxResults  = 3
	DefaultPubMedQuery = "Wegovy AND Novo Nordisk AND obesity"
	DefaultTrialsQuery = "Wegovy Novo Nordisk"

	defaultPubMedBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	defaultTrialsBaseURL = "https://clinicaltrials.gov/api/query"
)

// Opts holds configuration options for the research hub.
type Opts struct {
	Timeout       time.Duration
	MaxResults    int
	PubMedBaseURL string
	TrialsBaseURL string
}

// Option defines a configuration option for the research hub.
type Option func(*Opts)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Opts) { o.Timeout = d }
}

// WithMaxResults caps how many entries each lookup returns.
func WithMaxResults(n int) Option {
	return func(o *Opts) { o.MaxResults = n }
}

// WithPubMedBaseURL overrides the PubMed eutils base URL. Used in tests.
func WithPubMedBaseURL(url string) Option {
	return func(o *Opts) { o.PubMedBaseURL = url }
}

// WithTrialsBaseURL overrides the ClinicalTrials.gov base URL. Used in tests.
func WithTrialsBaseURL(url string) Option {
	return func(o *Opts) { o.TrialsBaseURL = url }
}

// Hub performs the two Knowledge Hub lookups.
type Hub struct {
	client        *resty.Client
	maxResults    int
	pubmedBaseURL string
	trialsBaseURL string
}

// NewHub creates a research hub with the given options.
func NewHub(opts ...Option) *Hub {
	cfg := Opts{
		Timeout:       DefaultTimeout,
		MaxResults:    DefaultMaxResults,
		PubMedBaseURL: defaultPubMedBaseURL,
		TrialsBaseURL: defaultTrialsBaseURL,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("research.NewHub: hub created", "timeout", cfg.Timeout, "maxResults", cfg.MaxResults)
	return &Hub{
		client:        resty.New().SetTimeout(cfg.Timeout),
		maxResults:    cfg.MaxResults,
		pubmedBaseURL: cfg.PubMedBaseURL,
		trialsBaseURL: cfg.TrialsBaseURL,
	}
}

// pubmedSearchResult is the esearch JSON envelope.
type pubmedSearchResult struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// pubmedArticleSet is the minimal efetch XML shape holding the title.
type pubmedArticleSet struct {
	Titles []string `xml:"PubmedArticle>MedlineCitation>Article>ArticleTitle"`
}

// PubMed fetches up to maxResults article titles with links. Any failure
// degrades to a single placeholder line.
func (h *Hub) PubMed(ctx context.Context) []string {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"db":      "pubmed",
			"term":    DefaultPubMedQuery,
			"retmax":  fmt.Sprintf("%d", h.maxResults),
			"retmode": "json",
		}).
		Get(h.pubmedBaseURL + "/esearch.fcgi")
	if err != nil || resp.IsError() {
		slog.Warn("research.PubMed: search failed", "error", err)
		return []string{"⚠️ PubMed fetch failed."}
	}

	var search pubmedSearchResult
	if err := json.Unmarshal(resp.Body(), &search); err != nil {
		slog.Warn("research.PubMed: malformed search response", "error", err)
		return []string{"⚠️ PubMed fetch failed."}
	}

	var articles []string
	for _, pmid := range search.ESearchResult.IDList {
		title, err := h.fetchArticleTitle(ctx, pmid)
		if err != nil {
			slog.Debug("research.PubMed: article fetch failed", "error", err, "pmid", pmid)
			continue
		}
		articles = append(articles, fmt.Sprintf("• %s\n🔗 https://pubmed.ncbi.nlm.nih.gov/%s/", title, pmid))
	}
	if len(articles) == 0 {
		return []string{"⚠️ No PubMed results."}
	}
	return articles
}

// fetchArticleTitle retrieves one article's title via efetch.
func (h *Hub) fetchArticleTitle(ctx context.Context, pmid string) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"db":      "pubmed",
			"id":      pmid,
			"retmode": "xml",
		}).
		Get(h.pubmedBaseURL + "/efetch.fcgi")
	if err != nil {
		return "", fmt.Errorf("efetch request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("efetch returned status %d", resp.StatusCode())
	}

	var set pubmedArticleSet
	if err := xml.Unmarshal(resp.Body(), &set); err != nil {
		return "", fmt.Errorf("efetch XML parse failed: %w", err)
	}
	if len(set.Titles) == 0 || set.Titles[0] == "" {
		return "", fmt.Errorf("efetch response has no article title")
	}
	return set.Titles[0], nil
}

// trialsResponse is the study_fields JSON envelope.
type trialsResponse struct {
	StudyFieldsResponse struct {
		StudyFields []struct {
			BriefTitle    []string `json:"BriefTitle"`
			Condition     []string `json:"Condition"`
			OverallStatus []string `json:"OverallStatus"`
			URL           []string `json:"URL"`
		} `json:"StudyFields"`
	} `json:"StudyFieldsResponse"`
}

// ClinicalTrials fetches up to maxResults trial summaries. Any failure
// degrades to a single placeholder line.
func (h *Hub) ClinicalTrials(ctx context.Context) []string {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"expr":    DefaultTrialsQuery,
			"fields":  "BriefTitle,Condition,OverallStatus,URL",
			"min_rnk": "1",
			"max_rnk": fmt.Sprintf("%d", h.maxResults),
			"fmt":     "json",
		}).
		Get(h.trialsBaseURL + "/study_fields")
	if err != nil || resp.IsError() {
		slog.Warn("research.ClinicalTrials: fetch failed", "error", err)
		return []string{"⚠️ ClinicalTrials.gov fetch failed."}
	}

	var data trialsResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		slog.Warn("research.ClinicalTrials: malformed response", "error", err)
		return []string{"⚠️ ClinicalTrials.gov fetch failed."}
	}

	var trials []string
	for _, study := range data.StudyFieldsResponse.StudyFields {
		trials = append(trials, fmt.Sprintf("• %s\nCondition: %s | Status: %s\n🔗 %s",
			first(study.BriefTitle, "No title"), first(study.Condition, ""),
			first(study.OverallStatus, ""), first(study.URL, "")))
	}
	if len(trials) == 0 {
		return []string{"⚠️ No clinical trials found."}
	}
	return trials
}

// first returns the first element of a study-fields value list, or the
// fallback when the list is empty.
func first(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return values[0]
}
