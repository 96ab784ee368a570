package yahoo

// Symbol is a single search hit. Score is the service's relevance score.
type Symbol struct {
	Symbol    string  `json:"symbol"`
	Score     float64 `json:"score"`
	ShortName *string `json:"shortname,omitempty"`
	LongName  *string `json:"longname,omitempty"`
	Sector    *string `json:"sector,omitempty"`
	Industry  *string `json:"industry,omitempty"`
	Exchange  *string `json:"exchange,omitempty"`
	ExchDisp  *string `json:"exchDisp,omitempty"`
}
