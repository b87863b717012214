package entity

// Page is the result of fetching one URL. Non-2xx responses are still
// pages; only transport failures produce no Page at all.
type Page struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
	Body       []byte `json:"body"`
	FromCache  bool   `json:"-"`
}

// HasBody reports whether there is anything to parse.
func (p *Page) HasBody() bool {
	return p != nil && len(p.Body) > 0
}

// IsError reports whether the response carried an error status.
func (p *Page) IsError() bool {
	return p != nil && p.StatusCode >= 400
}
