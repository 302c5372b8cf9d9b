package pipeline

import "encoding/json"

// Request asks for the realisation of one tree spec.
type Request struct {
	Tid  string          `json:"tid"`
	Spec json.RawMessage `json:"spec"`
}

type Response struct {
	Tid       string   `json:"tid"`
	Text      string   `json:"text"`
	Sentences []string `json:"sentences"`
	Trace     []string `json:"trace,omitempty"`
	Error     string   `json:"error,omitempty"`
}
