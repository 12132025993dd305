package protocol

import (
	"fmt"
	"sort"
	"time"

	"github.com/icftl/icftl/monitor"
)

// Observation is the wire form of one recorded (atom, subatom) value.
type Observation struct {
	AtomIndex    int    `json:"atomIndex"`
	SubatomIndex int    `json:"subatomIndex"`
	Value        string `json:"value"`
}

// VerdictEntry is the wire form of one monitor.BindingSnapshot
// (spec.md §6 "Verdict snapshot").
type VerdictEntry struct {
	BindingIndex     int           `json:"bindingIndex"`
	TimestampSequence []string     `json:"timestampSequence"`
	Configuration    string        `json:"configuration"`
	Observations     []Observation `json:"observations"`
}

// VerdictSnapshot is the wire form of a full snapshot response.
type VerdictSnapshot struct {
	Entries []VerdictEntry `json:"entries"`
}

// FromSnapshot converts a monitor verdict snapshot into its wire
// form. Timestamps are rendered as ISO-8601 (RFC 3339) strings, per
// spec.md §6.
func FromSnapshot(snapshots []monitor.BindingSnapshot) VerdictSnapshot {
	entries := make([]VerdictEntry, len(snapshots))
	for i, s := range snapshots {
		ts := make([]string, len(s.Timestamps))
		for j, t := range s.Timestamps {
			ts[j] = t.Format(time.RFC3339Nano)
		}

		obs := make([]Observation, 0, len(s.Observations))
		for k, v := range s.Observations {
			obs = append(obs, Observation{AtomIndex: k[0], SubatomIndex: k[1], Value: fmt.Sprint(v)})
		}
		sort.Slice(obs, func(i, j int) bool {
			if obs[i].AtomIndex != obs[j].AtomIndex {
				return obs[i].AtomIndex < obs[j].AtomIndex
			}
			return obs[i].SubatomIndex < obs[j].SubatomIndex
		})

		entries[i] = VerdictEntry{
			BindingIndex:      s.BindingIndex,
			TimestampSequence: ts,
			Configuration:     s.Verdict.String(),
			Observations:      obs,
		}
	}
	return VerdictSnapshot{Entries: entries}
}
