package model

// Step is one position of a realized progression.
type Step struct {
	Chord       string  `json:"chord"`
	Arrangement string  `json:"arrangement"`
	Voicing     Voicing `json:"voicing"`
}

// Result is the cheapest voicing sequence for a progression along with its
// total voice movement.
type Result struct {
	Steps []Step `json:"steps"`
	Cost  int    `json:"cost"`
}
