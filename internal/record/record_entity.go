package record

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindVisitor Kind = "visitor"
	KindGuest   Kind = "guest"
	KindAdhoc   Kind = "adhoc"
)

type Status string

const (
	StatusNew        Status = "new"
	StatusCheckedIn  Status = "checkedIn"
	StatusCheckedOut Status = "checkedOut"
	StatusAuthorized Status = "authorized"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusRemoved    Status = "removed"
)

// Record is one visitor, guest or adhoc visitor. Kind selects which of the
// embedded attributes are meaningful; the lifecycle columns are shared.
type Record struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind Kind      `gorm:"type:varchar(10);not null;index:idx_records_kind_status"`

	Contact   `gorm:"embedded"`
	Services  `gorm:"embedded"`
	Lifecycle `gorm:"embedded"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (Record) TableName() string {
	return "records"
}

// Contact holds the attributes every kind carries.
type Contact struct {
	Category       string `gorm:"type:varchar(30);not null"`
	FirstName      string `gorm:"type:varchar(100);not null"`
	LastName       string `gorm:"type:varchar(100);not null;default:''"`
	Email          string `gorm:"type:varchar(255);index"`
	Company        string `gorm:"type:varchar(200)"`
	Host           string `gorm:"type:varchar(200);not null;index"`
	HostEmail      string `gorm:"type:varchar(255)"`
	OnBehalfOf     bool   `gorm:"not null;default:false"`
	CountryCode    string `gorm:"type:varchar(6);not null;default:'+91'"`
	Phone          string `gorm:"type:varchar(20);not null;index"`
	PurposeOfVisit string `gorm:"type:text"`
	LaptopSerial   string `gorm:"type:varchar(100)"`
	CardNo         string `gorm:"type:varchar(50)"`
	Signature      string `gorm:"type:text"`
	SubmittedBy    string `gorm:"type:varchar(255)"`

	GuestWifiRequired bool `gorm:"not null;default:false"`
	BadgeSurrendered  bool `gorm:"not null;default:false"`
	HostApproved      bool `gorm:"not null;default:false"`
}

// Services are the facility requests. Only guests may set the flags;
// visitors may name a meeting room.
type Services struct {
	MeetingRoom             string `gorm:"type:varchar(100)"`
	MeetingRoomRequired     bool   `gorm:"not null;default:false"`
	RefreshmentRequired     bool   `gorm:"not null;default:false"`
	ProposedRefreshmentTime *time.Time
}

// Lifecycle is owned by the status engine, the removal gate and the
// overstay sweep. Clients never write these fields directly except
// Status, InTime and OutTime.
type Lifecycle struct {
	Status  Status     `gorm:"type:varchar(20);not null;default:'new';index:idx_records_kind_status"`
	InTime  *time.Time `gorm:"column:in_time"`
	OutTime *time.Time `gorm:"column:out_time"`

	ActualInTime  *time.Time `gorm:"column:actual_in_time"`
	ActualOutTime *time.Time `gorm:"column:actual_out_time"`
	DeleteAt      *time.Time `gorm:"column:delete_at;index"`

	UIRemoved     bool       `gorm:"column:ui_removed;not null;default:false;index"`
	RemovedAt     *time.Time `gorm:"column:removed_at"`
	RemovedReason string     `gorm:"column:removed_reason;type:text;not null;default:''"`

	// Named for a 15 minute reminder; the enforced threshold is 90 minutes.
	Reminder15Sent           bool       `gorm:"column:reminder15_sent;not null;default:false"`
	Reminder15SentAt         *time.Time `gorm:"column:reminder15_sent_at"`
	Reminder15SentForOutTime *time.Time `gorm:"column:reminder15_sent_for_out_time"`
}

// Label is the human name of a kind, as used in messages.
func (k Kind) Label() string {
	switch k {
	case KindGuest:
		return "Guest"
	case KindAdhoc:
		return "Adhoc visitor"
	default:
		return "Visitor"
	}
}

func (k Kind) Valid() bool {
	_, ok := kindRules[k]
	return ok
}
