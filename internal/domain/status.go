package domain

// APIStatus is the result of a connectivity probe. Details is optional.
type APIStatus struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ContentMeta struct {
	Count           int        `json:"count"`
	GeneratedAt     string     `json:"generated_at"`
	SourceStatus    *APIStatus `json:"source_status,omitempty"`
	StatusCheckedAt string     `json:"status_checked_at,omitempty"`
}

// ProbeResult is one provider's entry in a connectivity report.
type ProbeResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type ConnectivityReport struct {
	Success   bool        `json:"success"`
	Firecrawl ProbeResult `json:"firecrawl"`
	OpenAI    ProbeResult `json:"openai"`
	Timestamp string      `json:"timestamp"`
}

// FetchSummary reports one fetch-content run.
type FetchSummary struct {
	Success bool          `json:"success"`
	Stored  int           `json:"stored"`
	Items   []ContentItem `json:"items"`
	Errors  []string      `json:"errors"`
}
