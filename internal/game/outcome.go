package game

// MatchOutcome classifies how a match ended for reports.
type MatchOutcome int

const (
	OutcomeInconclusive MatchOutcome = iota // still running, nothing notable
	OutcomeDestroyed                        // player died
	OutcomeSurvived                         // still running with kills to show
	OutcomeDominant                         // still running at max scale
)

func (o MatchOutcome) String() string {
	switch o {
	case OutcomeDestroyed:
		return "destroyed"
	case OutcomeSurvived:
		return "survived"
	case OutcomeDominant:
		return "dominant"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// MatchOutcomeReason carries the figures the outcome was decided on.
type MatchOutcomeReason struct {
	Outcome     MatchOutcome
	Kills       int
	Spawned     int
	FinalScale  float64
	HealthPct   float64
	Description string
}

// DetermineMatchOutcome grades a snapshot.
func DetermineMatchOutcome(snap Snapshot) MatchOutcomeReason {
	r := MatchOutcomeReason{
		Kills:      snap.Stats.Kills,
		Spawned:    snap.Stats.Spawned,
		FinalScale: snap.Player.Scale,
		HealthPct:  snap.Player.HealthRatio * 100,
	}
	switch {
	case snap.Status == StatusOver && r.Kills == 0:
		r.Outcome, r.Description = OutcomeDestroyed, "destroyed_without_kills"
	case snap.Status == StatusOver:
		r.Outcome, r.Description = OutcomeDestroyed, "destroyed_after_kills"
	case r.FinalScale >= maxScale:
		r.Outcome, r.Description = OutcomeDominant, "survived_at_max_scale"
	case r.Kills > 0 && r.HealthPct >= 50:
		r.Outcome, r.Description = OutcomeSurvived, "survived_healthy"
	case r.Kills > 0:
		r.Outcome, r.Description = OutcomeSurvived, "survived_damaged"
	default:
		r.Outcome, r.Description = OutcomeInconclusive, "inconclusive_no_kills"
	}
	return r
}
