package scheduler

// Summary is what the scheduler keeps from one cycle response.
type Summary struct {
	Status    int
	Success   bool
	Processed int
	Errors    int
	Error     string
}

type cycleResp struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Processed int    `json:"dossiers_traites"`
	Results   struct {
		Errors []string `json:"errors"`
	} `json:"results"`
}
