package constants

import "strings"

// Tier is a user's subscription class.
type Tier string

// Stable values (store these exact strings).
const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// ParseTier canonicalizes a tier string; anything unrecognized is FREE.
func ParseTier(input string) Tier {
	if strings.EqualFold(strings.TrimSpace(input), string(TierPro)) {
		return TierPro
	}
	return TierFree
}

// Feature is a gateable product capability.
type Feature string

const (
	FeatureBasicSummary       Feature = "basic_summary"
	FeatureRiskFlags          Feature = "risk_flags"
	FeatureResponsibilityFlag Feature = "responsibility_flags"

	FeatureBlockchainVerify Feature = "blockchain_verification"
	FeatureChatbot          Feature = "chatbot"
	FeatureAccessibility    Feature = "accessibility_features"
	FeaturePremiumSummary   Feature = "premium_summary"
	FeatureVoiceReadout     Feature = "voice_readout"
	FeatureLegalReview      Feature = "legal_review"

	FeatureOrgDocumentAnalysis Feature = "org_document_analysis"
)

// freeFeatures is the complete FREE-tier allowance. PRO grants every feature.
var freeFeatures = []Feature{
	FeatureBasicSummary,
	FeatureRiskFlags,
	FeatureResponsibilityFlag,
}

var proFeatures = []Feature{
	FeatureBlockchainVerify,
	FeatureChatbot,
	FeatureAccessibility,
	FeaturePremiumSummary,
	FeatureVoiceReadout,
	FeatureLegalReview,
}

// TierFeatures returns the feature list advertised for a tier. PRO includes the
// free allowance as well as the premium set.
func TierFeatures(tier Tier) []Feature {
	if tier == TierPro {
		out := make([]Feature, 0, len(freeFeatures)+len(proFeatures))
		out = append(out, freeFeatures...)
		out = append(out, proFeatures...)
		return out
	}
	out := make([]Feature, len(freeFeatures))
	copy(out, freeFeatures)
	return out
}

// FeatureCosts maps each debitable feature to its token cost. Features absent
// from the map are free of charge once the tier check passes.
var FeatureCosts = map[Feature]int{
	FeaturePremiumSummary:      10,
	FeatureVoiceReadout:        5,
	FeatureLegalReview:         20,
	FeatureChatbot:             2,
	FeatureOrgDocumentAnalysis: 5,
}

// FeatureCost returns the token cost of a feature (0 for ungated/free features).
func FeatureCost(f Feature) int {
	return FeatureCosts[f]
}
