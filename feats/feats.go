package feats

import "strings"

type Feature uint32

// CPU Features
const (
	X64_IMPLICIT Feature = 0
	FPU          Feature = 1 << iota
	CMOV
	SSE
	SSE2
	SSE42
	ABM // LZCNT and POPCNT
	BMI1
)

const AllFeatures Feature = 0xffffffff

func FeatName(f Feature) string { return featNames[f] }

// Get a "|"-separated list of the features in f, or X64_IMPLICIT if f is empty.
func (f Feature) String() string {
	if f == X64_IMPLICIT {
		return featNames[X64_IMPLICIT]
	}
	var names []string
	for bit := FPU; bit <= BMI1; bit <<= 1 {
		if f&bit != 0 {
			names = append(names, featNames[bit])
		}
	}
	return strings.Join(names, "|")
}

// Lookup a feature by name, e.g. "SSE42".
func ByName(name string) (Feature, bool) {
	for f, n := range featNames {
		if strings.EqualFold(n, name) {
			return f, true
		}
	}
	return 0, false
}

var featNames = map[Feature]string{
	X64_IMPLICIT: "X64_IMPLICIT",
	FPU:          "FPU",
	CMOV:         "CMOV",
	SSE:          "SSE",
	SSE2:         "SSE2",
	SSE42:        "SSE42",
	ABM:          "ABM",
	BMI1:         "BMI1",
}
