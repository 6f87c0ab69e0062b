package game

import "github.com/pkg/errors"

type Stance int

const (
	StanceStand Stance = iota
	StanceCrouch
	StanceCrawl
)

var stanceNames = map[Stance]string{
	StanceStand:  "stand",
	StanceCrouch: "crouch",
	StanceCrawl:  "crawl",
}

func (s Stance) String() string {
	if name, ok := stanceNames[s]; ok {
		return name
	}
	return "stand"
}

// HeightFactor scales a character's height for its eye point and hit box.
// Only crouching lowers it; crawling characters count as full height.
func (s Stance) HeightFactor() float64 {
	if s == StanceCrouch {
		return 0.5
	}
	return 1
}

// SightFactor scales a character's height for character-to-character line
// of sight. Any stance other than standing halves it.
func (s Stance) SightFactor() float64 {
	if s == StanceStand {
		return 1
	}
	return 0.5
}

// Toggled is the stance the stance key switches to.
func (s Stance) Toggled() Stance {
	if s == StanceStand {
		return StanceCrouch
	}
	return StanceStand
}

func (s Stance) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Stance) UnmarshalText(text []byte) error {
	for stance, name := range stanceNames {
		if name == string(text) {
			*s = stance
			return nil
		}
	}
	return errors.Errorf("unknown stance %q", string(text))
}
