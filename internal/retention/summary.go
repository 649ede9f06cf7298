package retention

// Summary counts the outcome of a classification.
type Summary struct {
	Total    int          `json:"total" yaml:"total"`
	Kept     int          `json:"kept" yaml:"kept"`
	Removed  int          `json:"removed" yaml:"removed"`
	Unmarked int          `json:"unmarked,omitempty" yaml:"unmarked,omitempty"`
	ByRule   map[Rule]int `json:"byRule,omitempty" yaml:"byRule,omitempty"`
}

// Summarize counts marks and kept records per rule.
func Summarize(records []*Record) Summary {
	s := Summary{Total: len(records), ByRule: map[Rule]int{}}
	for _, r := range records {
		switch r.Mark {
		case Keep:
			s.Kept++
			s.ByRule[r.Rule]++
		case Remove:
			s.Removed++
		default:
			s.Unmarked++
		}
	}
	return s
}
