package dto

// Participants are the two identities allowed into an engagement's room.
type Participants struct {
	EngagementID string `json:"engagementId"`
	InfluencerID string `json:"influencerId"`
	BrandOwnerID string `json:"brandOwnerId"`
}

func (p Participants) Includes(userID string) bool {
	if userID == "" {
		return false
	}
	return userID == p.InfluencerID || userID == p.BrandOwnerID
}

// Counterpart returns the other side of the conversation for userID.
func (p Participants) Counterpart(userID string) (string, bool) {
	switch userID {
	case "":
		return "", false
	case p.InfluencerID:
		return p.BrandOwnerID, true
	case p.BrandOwnerID:
		return p.InfluencerID, true
	}
	return "", false
}
