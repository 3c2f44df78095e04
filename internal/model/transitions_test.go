package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadTransitions(t *testing.T) {
	assert.True(t, CanTransitionLead(LeadNew, LeadContacted))
	assert.True(t, CanTransitionLead(LeadNew, LeadLost))
	assert.True(t, CanTransitionLead(LeadContacted, LeadQualified))
	assert.True(t, CanTransitionLead(LeadContacted, LeadLost))
	assert.True(t, CanTransitionLead(LeadQualified, LeadConverted))

	// contacted cannot jump back
	assert.False(t, CanTransitionLead(LeadContacted, LeadNew))

	// terminal states allow nothing
	for _, to := range []string{LeadNew, LeadContacted, LeadQualified, LeadLost} {
		assert.False(t, CanTransitionLead(LeadConverted, to))
		assert.False(t, CanTransitionLead(LeadLost, to))
	}
}

func TestDealTransitions(t *testing.T) {
	assert.True(t, CanTransitionDeal(DealProspecting, DealQualification))
	assert.True(t, CanTransitionDeal(DealQualification, DealProposal))
	assert.True(t, CanTransitionDeal(DealProposal, DealNegotiation))
	assert.True(t, CanTransitionDeal(DealNegotiation, DealClosedWon))
	assert.True(t, CanTransitionDeal(DealProspecting, DealClosedLost))

	// stages are strictly ordered; no moving backwards or skipping order
	assert.False(t, CanTransitionDeal(DealNegotiation, DealProposal))
	assert.False(t, CanTransitionDeal(DealProspecting, DealProposal))

	// closed deals cannot move
	assert.False(t, CanTransitionDeal(DealClosedWon, DealNegotiation))
	assert.False(t, CanTransitionDeal(DealClosedLost, DealProspecting))
}

func TestSubscriptionTransitions(t *testing.T) {
	assert.True(t, CanTransitionSubscription(SubscriptionTrial, SubscriptionActive))
	assert.True(t, CanTransitionSubscription(SubscriptionTrial, SubscriptionCancelled))
	assert.True(t, CanTransitionSubscription(SubscriptionActive, SubscriptionSuspended))
	assert.True(t, CanTransitionSubscription(SubscriptionSuspended, SubscriptionActive))

	// cancelled is terminal
	assert.False(t, CanTransitionSubscription(SubscriptionCancelled, SubscriptionActive))
	assert.False(t, CanTransitionSubscription(SubscriptionCancelled, SubscriptionTrial))

	// trial cannot be suspended
	assert.False(t, CanTransitionSubscription(SubscriptionTrial, SubscriptionSuspended))
}

func TestTerminalHelpers(t *testing.T) {
	assert.True(t, LeadTerminal(LeadConverted))
	assert.True(t, LeadTerminal(LeadLost))
	assert.False(t, LeadTerminal(LeadQualified))

	assert.True(t, DealTerminal(DealClosedWon))
	assert.True(t, DealTerminal(DealClosedLost))
	assert.False(t, DealTerminal(DealNegotiation))
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, HasCapability(RoleAdmin, CapManageUsers))
	assert.True(t, HasCapability(RoleAdmin, CapManageBilling))
	assert.True(t, HasCapability(RoleManager, CapManageLeads))
	assert.False(t, HasCapability(RoleManager, CapManageUsers))
	assert.False(t, HasCapability(RoleSalesRep, CapViewReports))
	assert.False(t, HasCapability(RoleUser, CapManageLeads))
	assert.False(t, HasCapability("unknown_role", CapManageLeads))
}

func TestEntityRef(t *testing.T) {
	assert.True(t, EntityRef{Kind: RelatedCustomer, ID: 1}.Valid())
	assert.True(t, EntityRef{Kind: RelatedLead, ID: 7}.Valid())
	assert.True(t, EntityRef{Kind: RelatedDeal, ID: 3}.Valid())

	assert.False(t, EntityRef{Kind: RelatedDeal}.Valid())
	assert.False(t, EntityRef{Kind: "invoice", ID: 3}.Valid())
	assert.True(t, EntityRef{}.IsZero())
}
