package record

import (
	"regexp"
	"slices"
	"strings"

	"go-vms/internal/phone"
	recorderrors "go-vms/internal/record/errors"
	"go-vms/internal/shared/apperror"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type kindRule struct {
	categories []string
	statuses   []Status
	required   []string
}

var kindRules = map[Kind]kindRule{
	KindVisitor: {
		categories: []string{"Visitor"},
		statuses:   []Status{StatusNew, StatusCheckedIn, StatusCheckedOut, StatusAuthorized, StatusRemoved},
		required:   []string{"host", "firstName", "lastName", "email", "company", "phone", "purposeOfVisit"},
	},
	KindGuest: {
		categories: []string{"Isuzu Employee", "UD Employee"},
		statuses:   []Status{StatusNew, StatusApproved, StatusRejected, StatusCheckedIn, StatusCheckedOut, StatusRemoved},
		required:   []string{"firstName", "host", "phone", "inTime", "outTime"},
	},
	KindAdhoc: {
		categories: []string{"Adhoc"},
		statuses:   []Status{StatusNew, StatusCheckedIn, StatusCheckedOut, StatusAuthorized, StatusRemoved},
		required:   []string{"firstName", "lastName", "email", "company", "phone", "purposeOfVisit", "host"},
	},
}

var presence = map[string]func(*Record) bool{
	"host":           func(r *Record) bool { return r.Host != "" },
	"firstName":      func(r *Record) bool { return r.FirstName != "" },
	"lastName":       func(r *Record) bool { return r.LastName != "" },
	"email":          func(r *Record) bool { return r.Email != "" },
	"company":        func(r *Record) bool { return r.Company != "" },
	"phone":          func(r *Record) bool { return r.Phone != "" },
	"purposeOfVisit": func(r *Record) bool { return r.PurposeOfVisit != "" },
	"inTime":         func(r *Record) bool { return r.InTime != nil },
	"outTime":        func(r *Record) bool { return r.OutTime != nil },
}

// AllowsStatus reports whether status is legal for kind.
func AllowsStatus(kind Kind, status Status) bool {
	return slices.Contains(kindRules[kind].statuses, status)
}

// ParseStatus accepts the capitalised "Authorized" older clients send.
func ParseStatus(s string) Status {
	if strings.EqualFold(s, string(StatusAuthorized)) {
		return StatusAuthorized
	}
	return Status(strings.TrimSpace(s))
}

// normalize trims free text, lowercases email and defaults countryCode.
func normalize(r *Record) {
	r.Category = strings.TrimSpace(r.Category)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.HostEmail = strings.ToLower(strings.TrimSpace(r.HostEmail))
	r.SubmittedBy = strings.TrimSpace(r.SubmittedBy)
	r.Company = strings.TrimSpace(r.Company)
	r.Host = strings.TrimSpace(r.Host)
	r.Phone = strings.TrimSpace(r.Phone)
	r.PurposeOfVisit = strings.TrimSpace(r.PurposeOfVisit)
	r.CountryCode = strings.TrimSpace(r.CountryCode)
	if r.CountryCode == "" {
		r.CountryCode = phone.DefaultCountryCode
	}
}

// Validate normalizes r and checks it against the rules of its kind.
func Validate(r *Record) error {
	rule, ok := kindRules[r.Kind]
	if !ok {
		return apperror.InvalidField("kind")
	}
	normalize(r)

	if r.Category == "" {
		return apperror.RequiredField("Category")
	}
	if !slices.Contains(rule.categories, r.Category) {
		return recorderrors.ErrInvalidCategory
	}
	for _, field := range rule.required {
		if !presence[field](r) {
			return apperror.RequiredField(apperror.FieldLabel(field))
		}
	}
	if r.Email != "" && !emailPattern.MatchString(r.Email) {
		return recorderrors.ErrInvalidEmail
	}
	if r.HostEmail != "" && !emailPattern.MatchString(r.HostEmail) {
		return apperror.InvalidField("Host Email")
	}
	if err := phone.Validate(r.CountryCode, r.Phone); err != nil {
		return apperror.Validation(err.Error())
	}
	if !AllowsStatus(r.Kind, r.Status) {
		return recorderrors.ErrInvalidStatus
	}
	if r.Kind != KindGuest {
		// Facility flags are a guest-only service.
		r.MeetingRoomRequired = false
		r.RefreshmentRequired = false
		r.ProposedRefreshmentTime = nil
	}
	return nil
}
