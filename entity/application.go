package entity

// Application and Campaign belong to the marketplace's profile/campaign
// services. The messaging service only reads them to resolve participants.
type Application struct {
	BaseEntity
	CampaignID   string `json:"campaignId" gorm:"type:varchar(255);not null;index"`
	InfluencerID string `json:"influencerId" gorm:"type:varchar(255);not null;index"`
	Status       string `json:"status" gorm:"type:varchar(30)"`

	Campaign Campaign `json:"-" gorm:"foreignKey:CampaignID;references:ID"`
}

type Campaign struct {
	BaseEntity
	BrandOwnerID string `json:"brandOwnerId" gorm:"type:varchar(255);not null;index"`
	Title        string `json:"title" gorm:"type:varchar(255)"`
}
