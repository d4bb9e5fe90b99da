package theme

// Decoration is the ornament set of a theme. The set of implementations is
// closed: Tower, Cuckoo, Watch and Learning.
type Decoration interface {
	// Variant returns the theme the decoration belongs to.
	Variant() ID
	sealed()
}

// Tower ornaments a medieval tower clock: stone blocks around the ring,
// gothic spires at 12 and 6, and turret knobs.
type Tower struct {
	Stones      int     // stone blocks, evenly spaced
	StoneRadius float64 // distance of the stone centers from the hub
	StoneColor  string
	SpireColor  string
	KnobColor   string
}

// Cuckoo ornaments a black forest cuckoo clock: wood grain, leaves, two
// birds and two acorns. The outer ring is filled with a wood pattern.
type Cuckoo struct {
	GrainColor    string
	PatternStroke string
	LeafColor     string
	LeafHighlight string
	BirdColor     string
	BeakColor     string
	AcornColor    string
	AcornCap      string
}

// Watch ornaments a wristwatch: glass glare, crown, brand text and a date
// window. The outer ring is filled with a brushed metal gradient.
type Watch struct {
	Brand      string
	BrandColor string
	CrownColor string
	CrownCap   string
	RidgeColor string
	DateFrame  string
	DateColor  string
	Metal      [3]string // metal gradient stops
}

// Sector is the light/dark color pair of one hour sector on the learning face.
type Sector struct {
	Light string
	Dark  string
}

// LearningRadii holds the ring radii of the learning face.
type LearningRadii struct {
	Outer         float64 // white base and outer edge of the minute ring
	MinuteInner   float64 // inner edge of the minute ring, outer edge of hour segments
	MinuteLabel   float64 // minute boxes and labels
	HourInner     float64 // inner edge of hour segments
	HourNumeral   float64 // big 12-hour numerals
	Hour24Numeral float64 // small 24-hour numerals
	Hub           float64 // white inner disc
}

// Learning replaces the stock face with a computed teaching face: colored
// two-toned hour segments, a labeled minute ring, and 12/24-hour numerals.
type Learning struct {
	Sectors [12]Sector
	Radii   LearningRadii
}

func (Tower) Variant() ID    { return IDTower }
func (Cuckoo) Variant() ID   { return IDCuckoo }
func (Watch) Variant() ID    { return IDWatch }
func (Learning) Variant() ID { return IDLearning }

func (Tower) sealed()    {}
func (Cuckoo) sealed()   {}
func (Watch) sealed()    {}
func (Learning) sealed() {}

// SegmentSplit is the radius where an hour segment turns from its light
// outer tint to its dark inner shade.
func (r LearningRadii) SegmentSplit() float64 {
	return (r.MinuteInner+r.HourInner)/2 + 5
}
