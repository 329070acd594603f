package holiday

import "time"

type Source string

const (
	SourceCompany  Source = "company"
	SourceNational Source = "national"
)

type Holiday struct {
	Date   time.Time
	Name   string
	Source Source
}

// Set is a lookup of holiday dates keyed by YYYY-MM-DD.
type Set map[string]Holiday

func NewSet(holidays []Holiday) Set {
	s := make(Set, len(holidays))
	for _, h := range holidays {
		key := h.Date.Format("2006-01-02")
		// Company-defined entries win over generated national ones.
		if existing, ok := s[key]; ok && existing.Source == SourceCompany {
			continue
		}
		s[key] = h
	}
	return s
}

func (s Set) Contains(date time.Time) bool {
	_, ok := s[date.Format("2006-01-02")]
	return ok
}
