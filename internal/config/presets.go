package config

import "sort"

// Profile overlays settings suited to one kind of data.
type Profile struct {
	Description string
	Exclude     []string
	YearOffset  int
	Colormap    string
}

var Profiles = map[string]Profile{
	"precipitation": {
		Description: "rates and amounts; zero and negative cells are blank",
		Exclude:     []string{"nonpositive"},
		Colormap:    "viridis",
	},
	"temperature": {
		Description: "skips NaN and infinite cells",
		Exclude:     []string{"nonfinite"},
		Colormap:    "inferno",
	},
	"climate-projection": {
		Description: "yearly steps counted from 2006",
		YearOffset:  2006,
	},
}

func GetProfile(name string) (Profile, bool) {
	p, ok := Profiles[name]
	return p, ok
}

func ListProfiles() []string {
	names := make([]string, 0, len(Profiles))
	for name := range Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply returns a copy of c with the profile's non-zero fields set.
func (p Profile) Apply(c *Config) *Config {
	out := c.Clone()
	if len(p.Exclude) > 0 {
		out.Exclude = append([]string(nil), p.Exclude...)
	}
	if p.YearOffset != 0 {
		out.YearOffset = p.YearOffset
	}
	if p.Colormap != "" {
		out.Colormap = p.Colormap
	}
	return out
}
