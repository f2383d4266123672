package bebop

// Scales are bebop scale interval sets, in semitones from the root.
var Scales = map[string][]int{
	"Bebop_Dominant":      {0, 2, 4, 5, 7, 9, 10, 11},
	"Bebop_Major":         {0, 2, 4, 5, 7, 8, 9, 11},
	"Bebop_Minor":         {0, 2, 3, 5, 7, 9, 10, 11},
	"Bebop_Melodic_Minor": {0, 2, 3, 5, 7, 9, 10, 11},
}

// Chords are jazz chord voicings, in semitones from the chord root.
var Chords = map[string][]int{
	"maj7":    {0, 4, 7, 11},
	"dom7":    {0, 4, 7, 10},
	"min7":    {0, 3, 7, 10},
	"min7b5":  {0, 3, 6, 10},
	"dim7":    {0, 3, 6, 9},
	"maj9":    {0, 4, 7, 11, 14},
	"dom9":    {0, 4, 7, 10, 14},
	"min9":    {0, 3, 7, 10, 14},
	"dom7b9":  {0, 4, 7, 10, 13},
	"dom7#11": {0, 4, 7, 10, 18},
}

type progressionStep struct {
	chord string
	root  int // semitones above the key root
}

// Progressions are common jazz progressions, one step per measure.
var Progressions = map[string][]progressionStep{
	"ii-V-I": {{"min7", 2}, {"dom7", 7}, {"maj7", 0}},
	"ii-V-i": {{"min7b5", 2}, {"dom7b9", 7}, {"min7", 0}},
	"I-vi-ii-V": {
		{"maj7", 0}, {"min7", 9}, {"min7", 2}, {"dom7", 7},
	},
	"iii-VI-ii-V": {
		{"min7", 4}, {"dom7", 9}, {"min7", 2}, {"dom7", 7},
	},
	"Bird_Blues": {
		{"maj7", 0}, {"min7b5", 11}, {"min7", 9}, {"min7", 7},
		{"dom7", 5}, {"min7", 5}, {"dom7", 3}, {"min7", 2},
		{"dom7", 7}, {"min7", 2}, {"maj7", 0}, {"dom7", 7},
	},
}

// soloRhythms are note-duration sequences in beats.
var soloRhythms = map[string][]float64{
	"standard":      {0.5, 0.5, 0.5, 0.5, 1, 0.5, 0.5},
	"syncopated":    {0.75, 0.25, 0.5, 0.5, 1},
	"fast":          {0.25, 0.25, 0.25, 0.25, 0.25, 0.25, 0.25, 0.25},
	"triplet":       {0.33, 0.33, 0.33, 0.5, 0.5},
	"mixed":         {0.25, 0.25, 0.5, 0.75, 0.25},
	"chromatic_run": {0.125, 0.125, 0.125, 0.125, 0.125, 0.125, 0.125, 0.125},
}

// soloPhrases are scale-degree movements relative to a phrase start.
var soloPhrases = map[string][]int{
	"ascending":      {0, 1, 2, 3, 4, 5, 6, 7},
	"descending":     {7, 6, 5, 4, 3, 2, 1, 0},
	"arpeggios":      {0, 2, 4, 6, 7, 6, 4, 2},
	"approach_notes": {0, -1, 0, 2, 1, 2, 4, 3},
	"enclosure":      {1, -1, 0, 2, 1, 3, 2, 4},
}

// compingRhythms are chord-stab duration sequences in beats.
var compingRhythms = map[string][]float64{
	"basic":      {1, 1, 1, 1},
	"syncopated": {1.5, 0.5, 1, 1},
	"charleston": {0.75, 0.25, 1, 1, 1},
	"bossa":      {1, 0.5, 0.5, 1, 1},
	"modern":     {1.25, 0.75, 1, 1},
}
