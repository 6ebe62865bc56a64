package models

// PracticeProblem is one generated practice item derived from a solved prompt
type PracticeProblem struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
	Answer   string `json:"answer"`
}
