package outreach

// Message is a ready-to-send outreach text for one candidate.
type Message struct {
	CandidateURL  string `json:"candidate_url"`
	CandidateName string `json:"candidate_name"`
	Body          string `json:"body"`
}
