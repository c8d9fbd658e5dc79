package services

import "portfolio/internal/models"

// PlanTransitions lists the allowed plan status moves. Staying in place is always allowed.
var PlanTransitions = map[models.PlanStatus]map[models.PlanStatus]bool{
	models.PlanActive:    {models.PlanPaused: true, models.PlanCompleted: true, models.PlanArchived: true},
	models.PlanPaused:    {models.PlanActive: true, models.PlanArchived: true},
	models.PlanCompleted: {models.PlanActive: true, models.PlanArchived: true},
	models.PlanArchived:  {models.PlanActive: true},
}

func canTransition(current, to models.PlanStatus) bool {
	if current == "" || current == to {
		return true
	}
	nexts, ok := PlanTransitions[current]
	if !ok {
		return false
	}
	return nexts[to]
}
