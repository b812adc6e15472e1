package record

import (
	"time"

	"github.com/google/uuid"
)

type CreateVisitorRequest struct {
	Category          string     `json:"category" binding:"required"`
	Host              string     `json:"host" binding:"required"`
	HostEmail         string     `json:"hostEmail" binding:"omitempty,email"`
	OnBehalfOf        bool       `json:"onBehalfOf"`
	FirstName         string     `json:"firstName" binding:"required"`
	LastName          string     `json:"lastName" binding:"required"`
	Email             string     `json:"email" binding:"required"`
	Company           string     `json:"company" binding:"required"`
	CountryCode       string     `json:"countryCode"`
	Phone             string     `json:"phone" binding:"required"`
	PurposeOfVisit    string     `json:"purposeOfVisit" binding:"required"`
	MeetingRoom       string     `json:"meetingRoom"`
	LaptopSerial      string     `json:"laptopSerial"`
	GuestWifiRequired bool       `json:"guestWifiRequired"`
	CardNo            string     `json:"cardNo"`
	InTime            *time.Time `json:"inTime"`
	OutTime           *time.Time `json:"outTime"`
	Signature         string     `json:"signature"`
	BadgeSurrendered  bool       `json:"badgeSurrendered"`
	HostApproved      bool       `json:"hostApproved"`
	SubmittedBy       string     `json:"submittedBy"`
}

type CreateGuestRequest struct {
	Category                string     `json:"category" binding:"required"`
	FirstName               string     `json:"firstName" binding:"required"`
	LastName                string     `json:"lastName"`
	Email                   string     `json:"email"`
	Company                 string     `json:"company"`
	Host                    string     `json:"host" binding:"required"`
	HostEmail               string     `json:"hostEmail" binding:"omitempty,email"`
	OnBehalfOf              bool       `json:"onBehalfOf"`
	CountryCode             string     `json:"countryCode"`
	Phone                   string     `json:"phone" binding:"required"`
	PurposeOfVisit          string     `json:"purposeOfVisit"`
	MeetingRoomRequired     bool       `json:"meetingRoomRequired"`
	MeetingRoom             string     `json:"meetingRoom"`
	LaptopSerial            string     `json:"laptopSerial"`
	GuestWifiRequired       bool       `json:"guestWifiRequired"`
	RefreshmentRequired     bool       `json:"refreshmentRequired"`
	ProposedRefreshmentTime *time.Time `json:"proposedRefreshmentTime"`
	InTime                  *time.Time `json:"inTime" binding:"required"`
	OutTime                 *time.Time `json:"outTime" binding:"required"`
	CardNo                  string     `json:"cardNo"`
	Signature               string     `json:"signature"`
	BadgeSurrendered        bool       `json:"badgeSurrendered"`
	HostApproved            bool       `json:"hostApproved"`
	SubmittedBy             string     `json:"submittedBy"`
}

type CreateAdhocRequest struct {
	Category          string     `json:"category" binding:"required"`
	FirstName         string     `json:"firstName" binding:"required"`
	LastName          string     `json:"lastName" binding:"required"`
	Email             string     `json:"email" binding:"required"`
	Company           string     `json:"company" binding:"required"`
	CountryCode       string     `json:"countryCode"`
	Phone             string     `json:"phone" binding:"required"`
	PurposeOfVisit    string     `json:"purposeOfVisit" binding:"required"`
	Host              string     `json:"host" binding:"required"`
	HostEmail         string     `json:"hostEmail" binding:"omitempty,email"`
	LaptopSerial      string     `json:"laptopSerial"`
	GuestWifiRequired bool       `json:"guestWifiRequired"`
	CardNo            string     `json:"cardNo"`
	InTime            *time.Time `json:"inTime"`
	OutTime           *time.Time `json:"outTime"`
	Signature         string     `json:"signature"`
	BadgeSurrendered  bool       `json:"badgeSurrendered"`
	HostApproved      bool       `json:"hostApproved"`
	SubmittedBy       string     `json:"submittedBy"`
}

// CreateRequest is implemented by the per-kind intake payloads.
type CreateRequest interface {
	toRecord() Record
}

func (req CreateVisitorRequest) toRecord() Record {
	return Record{
		Kind: KindVisitor,
		Contact: Contact{
			Category:          req.Category,
			FirstName:         req.FirstName,
			LastName:          req.LastName,
			Email:             req.Email,
			Company:           req.Company,
			Host:              req.Host,
			HostEmail:         req.HostEmail,
			OnBehalfOf:        req.OnBehalfOf,
			CountryCode:       req.CountryCode,
			Phone:             req.Phone,
			PurposeOfVisit:    req.PurposeOfVisit,
			LaptopSerial:      req.LaptopSerial,
			CardNo:            req.CardNo,
			Signature:         req.Signature,
			SubmittedBy:       req.SubmittedBy,
			GuestWifiRequired: req.GuestWifiRequired,
			BadgeSurrendered:  req.BadgeSurrendered,
			HostApproved:      req.HostApproved,
		},
		Services:  Services{MeetingRoom: req.MeetingRoom},
		Lifecycle: Lifecycle{InTime: req.InTime, OutTime: req.OutTime},
	}
}

func (req CreateGuestRequest) toRecord() Record {
	return Record{
		Kind: KindGuest,
		Contact: Contact{
			Category:          req.Category,
			FirstName:         req.FirstName,
			LastName:          req.LastName,
			Email:             req.Email,
			Company:           req.Company,
			Host:              req.Host,
			HostEmail:         req.HostEmail,
			OnBehalfOf:        req.OnBehalfOf,
			CountryCode:       req.CountryCode,
			Phone:             req.Phone,
			PurposeOfVisit:    req.PurposeOfVisit,
			LaptopSerial:      req.LaptopSerial,
			CardNo:            req.CardNo,
			Signature:         req.Signature,
			SubmittedBy:       req.SubmittedBy,
			GuestWifiRequired: req.GuestWifiRequired,
			BadgeSurrendered:  req.BadgeSurrendered,
			HostApproved:      req.HostApproved,
		},
		Services: Services{
			MeetingRoom:             req.MeetingRoom,
			MeetingRoomRequired:     req.MeetingRoomRequired,
			RefreshmentRequired:     req.RefreshmentRequired,
			ProposedRefreshmentTime: req.ProposedRefreshmentTime,
		},
		Lifecycle: Lifecycle{InTime: req.InTime, OutTime: req.OutTime},
	}
}

func (req CreateAdhocRequest) toRecord() Record {
	return Record{
		Kind: KindAdhoc,
		Contact: Contact{
			Category:          req.Category,
			FirstName:         req.FirstName,
			LastName:          req.LastName,
			Email:             req.Email,
			Company:           req.Company,
			Host:              req.Host,
			HostEmail:         req.HostEmail,
			CountryCode:       req.CountryCode,
			Phone:             req.Phone,
			PurposeOfVisit:    req.PurposeOfVisit,
			LaptopSerial:      req.LaptopSerial,
			CardNo:            req.CardNo,
			Signature:         req.Signature,
			SubmittedBy:       req.SubmittedBy,
			GuestWifiRequired: req.GuestWifiRequired,
			BadgeSurrendered:  req.BadgeSurrendered,
			HostApproved:      req.HostApproved,
		},
		Lifecycle: Lifecycle{InTime: req.InTime, OutTime: req.OutTime},
	}
}

// UpdateRecordRequest is a partial update; nil fields are left as they are.
// Lifecycle bookkeeping (actual times, deleteAt, reminder and removal
// fields) is not settable here.
type UpdateRecordRequest struct {
	Category                *string    `json:"category"`
	FirstName               *string    `json:"firstName"`
	LastName                *string    `json:"lastName"`
	Email                   *string    `json:"email"`
	Company                 *string    `json:"company"`
	Host                    *string    `json:"host"`
	HostEmail               *string    `json:"hostEmail"`
	OnBehalfOf              *bool      `json:"onBehalfOf"`
	CountryCode             *string    `json:"countryCode"`
	Phone                   *string    `json:"phone"`
	PurposeOfVisit          *string    `json:"purposeOfVisit"`
	MeetingRoom             *string    `json:"meetingRoom"`
	MeetingRoomRequired     *bool      `json:"meetingRoomRequired"`
	RefreshmentRequired     *bool      `json:"refreshmentRequired"`
	ProposedRefreshmentTime *time.Time `json:"proposedRefreshmentTime"`
	LaptopSerial            *string    `json:"laptopSerial"`
	GuestWifiRequired       *bool      `json:"guestWifiRequired"`
	CardNo                  *string    `json:"cardNo"`
	Signature               *string    `json:"signature"`
	BadgeSurrendered        *bool      `json:"badgeSurrendered"`
	HostApproved            *bool      `json:"hostApproved"`
	SubmittedBy             *string    `json:"submittedBy"`
	Status                  *string    `json:"status"`
	InTime                  *time.Time `json:"inTime"`
	OutTime                 *time.Time `json:"outTime"`
}

type RemoveRecordRequest struct {
	Reason string `json:"reason"`
}

type RecordResponse struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	Category          string `json:"category"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	Company           string `json:"company"`
	Host              string `json:"host"`
	HostEmail         string `json:"hostEmail,omitempty"`
	OnBehalfOf        bool   `json:"onBehalfOf"`
	CountryCode       string `json:"countryCode"`
	Phone             string `json:"phone"`
	PurposeOfVisit    string `json:"purposeOfVisit"`
	LaptopSerial      string `json:"laptopSerial"`
	GuestWifiRequired bool   `json:"guestWifiRequired"`
	CardNo            string `json:"cardNo"`
	Signature         string `json:"signature"`
	BadgeSurrendered  bool   `json:"badgeSurrendered"`
	HostApproved      bool   `json:"hostApproved"`
	SubmittedBy       string `json:"submittedBy"`

	MeetingRoom             string     `json:"meetingRoom"`
	MeetingRoomRequired     bool       `json:"meetingRoomRequired,omitempty"`
	RefreshmentRequired     bool       `json:"refreshmentRequired,omitempty"`
	ProposedRefreshmentTime *time.Time `json:"proposedRefreshmentTime,omitempty"`

	Status                   Status     `json:"status"`
	InTime                   *time.Time `json:"inTime"`
	OutTime                  *time.Time `json:"outTime"`
	ActualInTime             *time.Time `json:"actualInTime"`
	ActualOutTime            *time.Time `json:"actualOutTime"`
	DeleteAt                 *time.Time `json:"deleteAt"`
	UIRemoved                bool       `json:"uiRemoved"`
	RemovedAt                *time.Time `json:"removedAt"`
	RemovedReason            string     `json:"removedReason"`
	Reminder15Sent           bool       `json:"reminder15Sent"`
	Reminder15SentAt         *time.Time `json:"reminder15SentAt"`
	Reminder15SentForOutTime *time.Time `json:"reminder15SentForOutTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RemoveRecordResponse struct {
	Message string         `json:"message"`
	Record  RecordResponse `json:"record"`
}

func mapToResponse(r Record) RecordResponse {
	id := ""
	if r.ID != uuid.Nil {
		id = r.ID.String()
	}
	return RecordResponse{
		ID:                       id,
		Kind:                     r.Kind,
		Category:                 r.Category,
		FirstName:                r.FirstName,
		LastName:                 r.LastName,
		Email:                    r.Email,
		Company:                  r.Company,
		Host:                     r.Host,
		HostEmail:                r.HostEmail,
		OnBehalfOf:               r.OnBehalfOf,
		CountryCode:              r.CountryCode,
		Phone:                    r.Phone,
		PurposeOfVisit:           r.PurposeOfVisit,
		LaptopSerial:             r.LaptopSerial,
		GuestWifiRequired:        r.GuestWifiRequired,
		CardNo:                   r.CardNo,
		Signature:                r.Signature,
		BadgeSurrendered:         r.BadgeSurrendered,
		HostApproved:             r.HostApproved,
		SubmittedBy:              r.SubmittedBy,
		MeetingRoom:              r.MeetingRoom,
		MeetingRoomRequired:      r.MeetingRoomRequired,
		RefreshmentRequired:      r.RefreshmentRequired,
		ProposedRefreshmentTime:  r.ProposedRefreshmentTime,
		Status:                   r.Status,
		InTime:                   r.InTime,
		OutTime:                  r.OutTime,
		ActualInTime:             r.ActualInTime,
		ActualOutTime:            r.ActualOutTime,
		DeleteAt:                 r.DeleteAt,
		UIRemoved:                r.UIRemoved,
		RemovedAt:                r.RemovedAt,
		RemovedReason:            r.RemovedReason,
		Reminder15Sent:           r.Reminder15Sent,
		Reminder15SentAt:         r.Reminder15SentAt,
		Reminder15SentForOutTime: r.Reminder15SentForOutTime,
		CreatedAt:                r.CreatedAt,
		UpdatedAt:                r.UpdatedAt,
	}
}

func mapToListResponse(records []Record) []RecordResponse {
	resp := make([]RecordResponse, len(records))
	for i, r := range records {
		resp[i] = mapToResponse(r)
	}
	return resp
}
