package book

// Report contains metadata about a finished generation run, used for quality
// feedback (low-resolution placements) without affecting the document itself.
type Report struct {
	PageCount  int          `json:"page_count"`
	PhotoCount int          `json:"photo_count"`
	Pages      []ReportPage `json:"pages"`
	Warnings   []string     `json:"warnings,omitempty"`
}

// ReportPage describes a single page of the generated document.
type ReportPage struct {
	PageNumber int           `json:"page_number"`
	Photos     []ReportPhoto `json:"photos"`
}

// ReportPhoto describes one photo placement.
type ReportPhoto struct {
	Index        int     `json:"index"`
	Name         string  `json:"name"`
	Rotation     int     `json:"rotation"`
	EffectiveDPI float64 `json:"effective_dpi"`
	LowRes       bool    `json:"low_res"`
}
