package results

// Standings is the published standings document.
type Standings struct {
	Series      SeriesMetadata `yaml:"Series" json:"series"`
	Season      []Standing     `yaml:"Season" json:"season"`
	Heats       []Heat         `yaml:"Heats" json:"heats"`
	Leaderboard []Row          `yaml:"Leaderboard,omitempty" json:"leaderboard,omitempty"`
	Skipped     []Skipped      `yaml:"Skipped,omitempty" json:"skipped,omitempty"`
}

type SeriesMetadata struct {
	Name        string `yaml:"name" json:"name"`
	Policy      string `yaml:"points policy" json:"pointsPolicy"`
	GeneratedOn string `yaml:"generated" json:"generated"`
	Entries     int    `yaml:"entries" json:"entries"`
}

type Standing struct {
	Place   int    `yaml:"place" json:"place"`
	Skipper string `yaml:"skipper" json:"skipper"`
	Points  int    `yaml:"points" json:"points"`
	Races   int    `yaml:"races" json:"races"`
}

type Heat struct {
	Date       string     `yaml:"date" json:"date"`
	Fleet      int        `yaml:"fleet" json:"fleet"`
	Fastest    float64    `yaml:"fastest" json:"fastest"`
	Mean       float64    `yaml:"mean" json:"mean"`
	Median     float64    `yaml:"median" json:"median"`
	Placings   []Placing  `yaml:"placings" json:"placings"`
	Conditions Conditions `yaml:"conditions,omitempty" json:"conditions,omitempty"`
}

// Conditions collects the wind and weather tags reported for a heat.
type Conditions struct {
	Wind    []string `yaml:"wind,omitempty" json:"wind,omitempty"`
	Weather []string `yaml:"weather,omitempty" json:"weather,omitempty"`
}

type Placing struct {
	Rank      int      `yaml:"rank" json:"rank"`
	Skipper   string   `yaml:"skipper" json:"skipper"`
	Boat      string   `yaml:"boat" json:"boat"`
	Model     string   `yaml:"model" json:"model"`
	Elapsed   string   `yaml:"elapsed,omitempty" json:"elapsed,omitempty"`
	Corrected float64  `yaml:"corrected" json:"corrected"`
	Points    int      `yaml:"points" json:"points"`
	Tie       bool     `yaml:"tie,omitempty" json:"tie,omitempty"`
	Marks     []string `yaml:"marks,omitempty" json:"marks,omitempty"`
}

// Row is a raw entry on the leaderboard.
type Row struct {
	Date      string `yaml:"date" json:"date"`
	Skipper   string `yaml:"skipper" json:"skipper"`
	Boat      string `yaml:"boat" json:"boat"`
	Model     string `yaml:"model" json:"model"`
	Corrected string `yaml:"corrected" json:"corrected"`
}

type Skipped struct {
	Seq     int    `yaml:"seq" json:"seq"`
	Skipper string `yaml:"skipper" json:"skipper"`
	Date    string `yaml:"date" json:"date"`
	Reason  string `yaml:"reason" json:"reason"`
	Detail  string `yaml:"detail" json:"detail"`
}
