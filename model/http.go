package model

type VoicingsRequestBody struct {
	Chords     []string `json:"chords"`
	Chart      string   `json:"chart"`
	Range      []int    `json:"range"`
	Positions  string   `json:"positions"`
	AllowHolds bool     `json:"allow_holds"`
}

type VoicingsResponse struct {
	Id    string `json:"id"`
	Cost  int    `json:"cost"`
	Steps []Step `json:"steps"`
}

type Standard struct {
	Name   string   `json:"name"`
	Chords []string `json:"chords"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
	Code  string `json:"code"`
}
