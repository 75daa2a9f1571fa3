package gamedb

import "sort"

// GrowthStage describes one stage in an object's development.
type GrowthStage struct {
	Name  string
	Age   int64 // seconds of game time at which this stage begins
	Key   string
	Desc  string
	Attrs map[string]string // extra attributes applied on entry
}

// GrowthState tracks an object's age and staged change over time.
// Stages are kept sorted by Age.
type GrowthState struct {
	Stages     []GrowthStage
	Stage      string // current stage name, "" before the first transition
	Age        int64  // accumulated age in seconds
	NextAge    int64  // age at which the next transition happens
	LastUpdate int64  // unix seconds of the last Advance
	Paused     bool   // pre-grow gate: aging suspended while set
}

// NewGrowthState returns an empty growth state anchored at now.
func NewGrowthState(now int64) *GrowthState {
	return &GrowthState{LastUpdate: now}
}

// StageByName returns the named stage, or nil.
func (g *GrowthState) StageByName(name string) *GrowthStage {
	for i := range g.Stages {
		if g.Stages[i].Name == name {
			return &g.Stages[i]
		}
	}
	return nil
}

// StageNames returns all stage names in age order.
func (g *GrowthState) StageNames() []string {
	names := make([]string, len(g.Stages))
	for i, st := range g.Stages {
		names[i] = st.Name
	}
	return names
}

// AddStage inserts a stage, keeping the list sorted by age. An existing
// stage of the same name is only replaced when force is set.
func (g *GrowthState) AddStage(st GrowthStage, force bool) bool {
	if existing := g.StageByName(st.Name); existing != nil {
		if !force {
			return false
		}
		*existing = st
	} else {
		g.Stages = append(g.Stages, st)
	}
	sort.SliceStable(g.Stages, func(i, j int) bool {
		return g.Stages[i].Age < g.Stages[j].Age
	})
	return true
}

// RemoveStage deletes a stage by name.
func (g *GrowthState) RemoveStage(name string) bool {
	for i := range g.Stages {
		if g.Stages[i].Name == name {
			g.Stages = append(g.Stages[:i], g.Stages[i+1:]...)
			return true
		}
	}
	return false
}

// AtFinalStage reports whether the current stage is the last one.
func (g *GrowthState) AtFinalStage() bool {
	return len(g.Stages) > 0 && g.Stage == g.Stages[len(g.Stages)-1].Name
}

// Advance moves the growth clock to now and returns the stage to apply, if
// any, plus whether another tick should be scheduled. With force set the
// current stage is re-applied even when no threshold was crossed (used after
// stage add/remove).
func (g *GrowthState) Advance(now int64, force bool) (apply *GrowthStage, again bool) {
	if len(g.Stages) == 0 {
		// nothing to grow into yet, keep ticking
		g.LastUpdate = now
		return nil, true
	}
	if g.Paused && !force {
		g.LastUpdate = now
		return nil, true
	}

	currentAge := (now - g.LastUpdate) + g.Age
	if currentAge < g.Age {
		currentAge = g.Age
	}

	if g.AtFinalStage() && !force {
		// done growing, stop the clock
		return nil, false
	}

	if currentAge < g.NextAge && !force {
		g.Age = currentAge
		g.LastUpdate = now
		return nil, true
	}

	// Find the stage this age lands in and the next threshold.
	var next int64
	var newStage *GrowthStage
	base := int64(-1)
	for i := range g.Stages {
		st := &g.Stages[i]
		if currentAge < st.Age {
			next = st.Age
			break
		}
		if base <= st.Age {
			base = st.Age
			newStage = st
		}
	}

	g.Age = currentAge
	g.LastUpdate = now

	if newStage == nil {
		// age precedes the first stage; wait for it
		g.NextAge = next
		return nil, true
	}

	changed := newStage.Name != g.Stage
	g.NextAge = next
	g.Stage = newStage.Name

	if !changed && !force {
		return nil, !g.AtFinalStage()
	}
	return newStage, !g.AtFinalStage()
}
