package model

// AmenityOptions is the canonical tag vocabulary offered when adding a
// washroom. Tags outside the list are still accepted; the vocabulary is
// advisory, not a constraint.
var AmenityOptions = []string{
	"Accessible",
	"Baby changing",
	"24/7",
	"Clean",
	"Private",
	"Well-maintained",
	"Free",
	"Quiet",
	"Well-stocked",
	"Hand dryer",
	"Paper towels",
	"Soap dispenser",
}
