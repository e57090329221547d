package model

// QueryResponse pairs the retrieved items, in retrieval order, with the model's answer.
type QueryResponse struct {
	Matches        []NormalizedItem `json:"matches"`
	Recommendation string           `json:"recommendation"`
}
