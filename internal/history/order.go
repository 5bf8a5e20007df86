package history

import (
	"cmp"
	"encoding/binary"
	"encoding/hex"
	"math"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// SortByYear returns a copy of events ordered by year. Events sharing a year
// are ordered by their content, starting with ID, so the result does not
// depend on input order even when IDs are empty or repeated.
func SortByYear(events []Event) []Event {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, compareEvents)
	return sorted
}

func compareEvents(a, b Event) int {
	return cmp.Or(
		cmp.Compare(a.Year, b.Year),
		strings.Compare(a.ID, b.ID),
		strings.Compare(a.Title, b.Title),
		strings.Compare(string(a.Type), string(b.Type)),
		strings.Compare(string(a.Category), string(b.Category)),
		cmp.Compare(a.Significance, b.Significance),
		strings.Compare(a.Description, b.Description),
		cmp.Compare(a.Location.X, b.Location.X),
		cmp.Compare(a.Location.Y, b.Location.Y),
		cmp.Compare(a.Location.Z, b.Location.Z),
		strings.Compare(a.CivilizationID, b.CivilizationID),
		slices.Compare(a.RelatedFigures, b.RelatedFigures),
		slices.Compare(a.RelatedCivilizations, b.RelatedCivilizations),
	)
}

// Fingerprint hashes the content of an event set. Two sets holding the same
// events in any order share a fingerprint.
func Fingerprint(events []Event) string {
	d := xxhash.New()
	var buf [8]byte
	writeInt := func(n int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		d.Write(buf[:])
	}
	writeStr := func(s string) {
		writeInt(int64(len(s)))
		d.WriteString(s)
	}

	for _, e := range SortByYear(events) {
		writeStr(e.ID)
		writeInt(int64(e.Year))
		writeStr(e.Title)
		writeStr(e.Description)
		writeStr(string(e.Type))
		writeStr(string(e.Category))
		writeInt(int64(math.Float64bits(e.Significance)))
		writeInt(int64(math.Float64bits(e.Location.X)))
		writeInt(int64(math.Float64bits(e.Location.Y)))
		writeInt(int64(math.Float64bits(e.Location.Z)))
		writeStr(e.CivilizationID)
		writeInt(int64(len(e.RelatedFigures)))
		for _, f := range e.RelatedFigures {
			writeStr(f)
		}
		writeInt(int64(len(e.RelatedCivilizations)))
		for _, c := range e.RelatedCivilizations {
			writeStr(c)
		}
	}

	binary.BigEndian.PutUint64(buf[:], d.Sum64())
	return hex.EncodeToString(buf[:])
}
