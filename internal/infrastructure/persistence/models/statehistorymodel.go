package models

import "time"

// DefaultStateHistoryTable is the view joining passage state changes with
// the project, plan and recipient columns a digest needs.
const DefaultStateHistoryTable = "state_history_digest"

type StateHistoryModel struct {
	ID             uint      `gorm:"primaryKey"`
	ProjectID      int       `gorm:"column:projectid"`
	Project        string    `gorm:"column:project;size:255"`
	OrganizationID int       `gorm:"column:organizationid"`
	Organization   string    `gorm:"column:organization;size:255"`
	PlanID         int       `gorm:"column:planid"`
	Plan           string    `gorm:"column:plan;size:255"`
	PlanType       string    `gorm:"column:plantype;size:50"`
	Transcriber    *string   `gorm:"column:transcriber;size:255"`
	Reviewer       *string   `gorm:"column:reviewer;size:255"`
	Passage        string    `gorm:"column:passage;size:255"`
	State          string    `gorm:"column:state;size:50"`
	ModifiedBy     string    `gorm:"column:modifiedby;size:255"`
	Updated        time.Time `gorm:"column:updated;index"`
	Email          string    `gorm:"column:email;size:255;index"`
	Timezone       *string   `gorm:"column:timezone;size:64"`
	Locale         *string   `gorm:"column:locale;size:16"`
	Comments       *string   `gorm:"column:comments;type:text"`
}

func (StateHistoryModel) TableName() string {
	return DefaultStateHistoryTable
}
