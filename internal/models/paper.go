package models

// PaperSource selects the backend(s) for a paper search.
type PaperSource string

const (
	PaperSourceCrossref PaperSource = "crossref"
	PaperSourceArxiv    PaperSource = "arxiv"
	PaperSourceBoth     PaperSource = "both"
	PaperSourceAll      PaperSource = "all"
)

// Paper is one normalized paper record from Crossref or arXiv.
type Paper struct {
	Source       string   `json:"source"`
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Authors      []string `json:"authors"`
	Venue        *string  `json:"venue"`
	Publisher    *string  `json:"publisher,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	Year         *int     `json:"year"`
	DOI          *string  `json:"doi"`
	URL          *string  `json:"url"`
	PDFURL       *string  `json:"pdf_url"`
	Abstract     *string  `json:"abstract"`
	IsOpenAccess bool     `json:"is_open_access"`
}

// PaperQuery is a validated paper search request.
type PaperQuery struct {
	Query  string
	Source PaperSource
	Limit  int
	Offset int
}

// PaperSearchResponse is the paper search payload. Total is nil when the backend
// does not report one.
type PaperSearchResponse struct {
	Total   *int        `json:"total"`
	Count   int         `json:"count"`
	Offset  int         `json:"offset"`
	Results []*Paper    `json:"results"`
	Query   string      `json:"query"`
	Source  PaperSource `json:"source"`
}
