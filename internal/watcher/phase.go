package watcher

// Phase is the stage of a run.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseScraped
	PhaseDiffed
	PhaseNotifying
	PhasePersisted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseScraped:
		return "scraped"
	case PhaseDiffed:
		return "diffed"
	case PhaseNotifying:
		return "notifying"
	case PhasePersisted:
		return "persisted"
	default:
		return "unknown"
	}
}
