package domain

// ResolveMethod identifica a estratégia que produziu a URL final.
type ResolveMethod string

const (
	ResolveMethodHTTP    ResolveMethod = "http"
	ResolveMethodBrowser ResolveMethod = "browser"
)

// ResolutionResult é o desfecho da resolução de uma URL. Falha terminal é
// representada por Error preenchido e FinalURL vazio, nunca por um error Go
// propagado ao handler.
type ResolutionResult struct {
	FinalURL        string        `json:"final_url"`
	FinalURLSuffix  string        `json:"final_url_suffix"`
	Method          ResolveMethod `json:"method"`
	StatusCode      int           `json:"status_code"`
	RedirectChain   []string      `json:"redirect_chain"`
	PageTitle       string        `json:"page_title,omitempty"`
	PageDescription string        `json:"page_description,omitempty"`
	ProxyUsed       string        `json:"proxy_used,omitempty"`
	Attempts        int           `json:"attempts"`
	Error           string        `json:"error,omitempty"`
}

// Failed indica se a resolução terminou sem URL final.
func (r ResolutionResult) Failed() bool {
	return r.Error != "" || r.FinalURL == ""
}

// ProxyHealth é a visão administrativa do estado de um proxy do pool.
type ProxyHealth struct {
	URL          string `json:"url"`
	Country      string `json:"country"`
	Enabled      bool   `json:"enabled"`
	FailureCount int    `json:"failure_count"`
	SuccessCount int    `json:"success_count"`
	LastUsedAt   int64  `json:"last_used_at"`
}
