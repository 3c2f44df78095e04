package model

// Allowed status transitions per entity. Terminal states map to an empty set.

var leadTransitions = map[string]map[string]bool{
	LeadNew:       {LeadContacted: true, LeadQualified: true, LeadConverted: true, LeadLost: true},
	LeadContacted: {LeadQualified: true, LeadLost: true},
	LeadQualified: {LeadConverted: true, LeadLost: true},
	LeadConverted: {},
	LeadLost:      {},
}

var dealTransitions = map[string]map[string]bool{
	DealProspecting:   {DealQualification: true, DealClosedWon: true, DealClosedLost: true},
	DealQualification: {DealProposal: true, DealClosedWon: true, DealClosedLost: true},
	DealProposal:      {DealNegotiation: true, DealClosedWon: true, DealClosedLost: true},
	DealNegotiation:   {DealClosedWon: true, DealClosedLost: true},
	DealClosedWon:     {},
	DealClosedLost:    {},
}

var subscriptionTransitions = map[string]map[string]bool{
	SubscriptionTrial:     {SubscriptionActive: true, SubscriptionCancelled: true},
	SubscriptionActive:    {SubscriptionCancelled: true, SubscriptionSuspended: true},
	SubscriptionSuspended: {SubscriptionActive: true, SubscriptionCancelled: true},
	SubscriptionCancelled: {},
}

func canTransition(current, to string, table map[string]map[string]bool) bool {
	nexts, ok := table[current]
	if !ok {
		return false
	}
	return nexts[to]
}

// CanTransitionLead reports whether a lead may move from current to to.
func CanTransitionLead(current, to string) bool {
	return canTransition(current, to, leadTransitions)
}

// CanTransitionDeal reports whether a deal may move from current to to.
// Deal stages are strictly ordered; closing is allowed from any open stage.
func CanTransitionDeal(current, to string) bool {
	return canTransition(current, to, dealTransitions)
}

// CanTransitionSubscription reports whether an organization's subscription
// status may move from current to to.
func CanTransitionSubscription(current, to string) bool {
	return canTransition(current, to, subscriptionTransitions)
}

// LeadTerminal reports whether status is a terminal lead status.
func LeadTerminal(status string) bool {
	return status == LeadConverted || status == LeadLost
}

// DealTerminal reports whether stage is a terminal deal stage.
func DealTerminal(stage string) bool {
	return stage == DealClosedWon || stage == DealClosedLost
}
