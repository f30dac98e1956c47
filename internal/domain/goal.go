package domain

import "time"

// GoalTerm is the time horizon of a goal.
type GoalTerm string

// Goal terms.
const (
	GoalTermLong   GoalTerm = "LONG_TERM"   // roughly 1-5+ years
	GoalTermMedium GoalTerm = "MEDIUM_TERM" // roughly 3-12 months
	GoalTermShort  GoalTerm = "SHORT_TERM"  // days to weeks
)

// Valid reports whether t is a known goal term.
func (t GoalTerm) Valid() bool {
	switch t {
	case GoalTermLong, GoalTermMedium, GoalTermShort:
		return true
	}
	return false
}

// GoalStatus is the progress state of a goal.
type GoalStatus string

// Goal statuses.
const (
	GoalStatusNotStarted GoalStatus = "NOT_STARTED"
	GoalStatusInProgress GoalStatus = "IN_PROGRESS"
	GoalStatusCompleted  GoalStatus = "COMPLETED"
	GoalStatusCancelled  GoalStatus = "CANCELLED"
	GoalStatusOnHold     GoalStatus = "ON_HOLD"
)

// Valid reports whether s is a known goal status.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusNotStarted, GoalStatusInProgress, GoalStatusCompleted,
		GoalStatusCancelled, GoalStatusOnHold:
		return true
	}
	return false
}

// Goal is a user-owned objective with a time horizon and progress status.
// Goals may form a hierarchy via ParentID; the parent link is set at creation
// and is deliberately excluded from bulk updates.
type Goal struct {
	ID             string     `json:"id"                        gorm:"type:char(36);primaryKey"`
	Title          string     `json:"title"                     gorm:"type:varchar(255);not null"`
	Description    string     `json:"description"               gorm:"type:text"`
	Type           GoalTerm   `json:"type"                      gorm:"type:varchar(16);not null"`
	Status         GoalStatus `json:"status"                    gorm:"type:varchar(16);not null"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	ParentID       *string    `json:"parent_id,omitempty"       gorm:"type:char(36);index"`
	UserID         string     `json:"user_id"                   gorm:"type:varchar(64);not null;index:idx_user_goals"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName returns the database table name for Goal.
func (Goal) TableName() string { return "goals" }

// GoalType is a layer configuration grouping custom field definitions.
// Custom fields are scoped to exactly one goal type.
type GoalType struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Title     string    `json:"title"      gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for GoalType.
func (GoalType) TableName() string { return "goal_types" }

// CustomFieldDefinition describes one extra input field rendered for goals of
// a given goal type. Required definitions drive server-side validation.
type CustomFieldDefinition struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	GoalTypeID  string    `json:"goal_type_id" gorm:"type:char(36);not null;index"`
	Label       string    `json:"label"        gorm:"type:varchar(255);not null"`
	Type        string    `json:"type"         gorm:"type:varchar(32);not null"`
	Required    bool      `json:"required"     gorm:"not null"`
	Placeholder string    `json:"placeholder"  gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// GoalType is the owning layer. Definitions are cascade-deleted when the
	// goal type is removed.
	GoalType GoalType `json:"-" gorm:"foreignKey:GoalTypeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for CustomFieldDefinition.
func (CustomFieldDefinition) TableName() string { return "custom_field_definitions" }
