package tournament

import (
	"crypto/sha1"
	"fmt"
	"strings"
)

// DescriptorSeparator joins Name and Category in Descriptor.
const DescriptorSeparator = " | "

// Tournament represents a single 4PADEL tournament listing.
// Every field may be empty: extraction is best effort.
type Tournament struct {
	Level      string `json:"level"`
	Club       string `json:"club"`
	Name       string `json:"name"`
	Date       string `json:"date"` // DD/MM/YYYY, verbatim from the page
	Time       string `json:"time"` // H:MM or HH:MM
	Category   string `json:"category"`
	Descriptor string `json:"descriptor"` // Name | Category, informational only
}

// Identity is the uniqueness key of a tournament.
type Identity struct {
	Club string
	Date string
	Time string
	Name string
}

// New creates a Tournament with Descriptor derived from name and category.
func New(level, club, name, date, clock, category string) *Tournament {
	return &Tournament{
		Level:      level,
		Club:       club,
		Name:       name,
		Date:       date,
		Time:       clock,
		Category:   category,
		Descriptor: JoinDescriptor(name, category),
	}
}

// JoinDescriptor joins the non-empty parts with DescriptorSeparator.
func JoinDescriptor(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, DescriptorSeparator)
}

// Identity returns the (club, date, time, name) key of t.
func (t *Tournament) Identity() Identity {
	return Identity{Club: t.Club, Date: t.Date, Time: t.Time, Name: t.Name}
}

// ID returns a deterministic SHA1 hex digest of the identity, used where a
// compact opaque key is needed (calendar UIDs, log fields).
func (id Identity) ID() string {
	h := sha1.New()
	h.Write([]byte(id.Club + "|" + id.Date + "|" + id.Time + "|" + id.Name))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Less orders identities lexicographically by club, date, time, name.
func (id Identity) Less(other Identity) bool {
	if id.Club != other.Club {
		return id.Club < other.Club
	}
	if id.Date != other.Date {
		return id.Date < other.Date
	}
	if id.Time != other.Time {
		return id.Time < other.Time
	}
	return id.Name < other.Name
}

// String renders the identity for logs.
func (id Identity) String() string {
	return fmt.Sprintf("%s %s %s %s", id.Club, id.Date, id.Time, id.Name)
}
