package docs

// Response represents the reload result
type Response struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Documents int    `json:"documents"`
	Chunks    int    `json:"chunks"`
}
