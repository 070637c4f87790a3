package gpa

import (
	"sort"

	"github.com/PramodHashantha/GPA-Calculator/internal/types"
)

const rankListSize = 5

// RankedSubject is a subject annotated with the quality points its grade is
// worth.
type RankedSubject struct {
	types.Subject
	Points float64 `json:"points"`
}

// Performance holds the top and bottom performers for a user.
type Performance struct {
	Best  []RankedSubject `json:"best"`
	Worst []RankedSubject `json:"worst"`
}

// RankPerformance orders subjects by grade points, ties broken by credits
// (both descending), and slices out the 5 best and 5 worst. Worst is the tail
// of the descending order reversed, so it reads worst-first. With fewer than
// 5 subjects both lists cover the whole set.
func RankPerformance(subjects []types.Subject) Performance {
	ranked := make([]RankedSubject, len(subjects))
	for i, s := range subjects {
		ranked[i] = RankedSubject{Subject: s, Points: PointsOf(s.Grade)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].Credits > ranked[j].Credits
	})

	n := len(ranked)
	bestEnd := rankListSize
	if bestEnd > n {
		bestEnd = n
	}
	worstStart := n - rankListSize
	if worstStart < 0 {
		worstStart = 0
	}

	best := make([]RankedSubject, bestEnd)
	copy(best, ranked[:bestEnd])

	tail := ranked[worstStart:]
	worst := make([]RankedSubject, len(tail))
	for i, s := range tail {
		worst[len(tail)-1-i] = s
	}

	return Performance{Best: best, Worst: worst}
}
