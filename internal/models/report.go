package models

import (
	"fmt"
	"strings"
)

type ReportStatus string

const (
	StatusNew        ReportStatus = "NEW"
	StatusInProgress ReportStatus = "IN_PROGRESS"
	StatusEscalated  ReportStatus = "ESCALATED"
	StatusResolved   ReportStatus = "RESOLVED"
	StatusClosed     ReportStatus = "CLOSED"
)

// ReportStatuses lists statuses in workflow order.
var ReportStatuses = []ReportStatus{StatusNew, StatusInProgress, StatusEscalated, StatusResolved, StatusClosed}

func (s ReportStatus) Valid() bool {
	for _, v := range ReportStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Label is the human form, e.g. "In Progress".
func (s ReportStatus) Label() string {
	return enumLabel(string(s))
}

func ParseReportStatus(s string) (ReportStatus, error) {
	status := ReportStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid status %q", s)
	}
	return status, nil
}

type ReportPriority string

const (
	PriorityLow      ReportPriority = "LOW"
	PriorityMedium   ReportPriority = "MEDIUM"
	PriorityHigh     ReportPriority = "HIGH"
	PriorityCritical ReportPriority = "CRITICAL"
)

var ReportPriorities = []ReportPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (p ReportPriority) Valid() bool {
	for _, v := range ReportPriorities {
		if p == v {
			return true
		}
	}
	return false
}

func (p ReportPriority) Label() string {
	return enumLabel(string(p))
}

func ParseReportPriority(s string) (ReportPriority, error) {
	priority := ReportPriority(strings.ToUpper(strings.TrimSpace(s)))
	if !priority.Valid() {
		return "", fmt.Errorf("invalid priority %q", s)
	}
	return priority, nil
}

func enumLabel(s string) string {
	words := strings.Split(strings.ToLower(s), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

const NoteTypeComment = "COMMENT"

// AnonymousPhone is the reporter phone value for anonymous submissions.
const AnonymousPhone = "ANONYMOUS"

// Report is a submitted fraud-incident record as served by the report API.
type Report struct {
	ID                  ID             `json:"id"`
	ReferenceID         string         `json:"reference_id"`
	FraudMedium         string         `json:"fraud_medium"`
	IncidentType        string         `json:"incident_type"`
	LocationCity        string         `json:"location_city"`
	LocationState       string         `json:"location_state"`
	IncidentDescription string         `json:"incident_description"`
	Status              ReportStatus   `json:"status"`
	Priority            ReportPriority `json:"priority"`
	AmountInvolved      float64        `json:"amount_involved"`

	SuspectPhone         string `json:"suspect_phone,omitempty"`
	SuspectEmail         string `json:"suspect_email,omitempty"`
	SuspectUPIID         string `json:"suspect_upi_id,omitempty"`
	SuspectAccountNumber string `json:"suspect_account_number,omitempty"`
	SuspectBankName      string `json:"suspect_bank_name,omitempty"`
	SuspectWebsiteURL    string `json:"suspect_website_url,omitempty"`
	SuspectOtherDetails  string `json:"suspect_other_details,omitempty"`

	Phone              string `json:"phone,omitempty"`
	Anonymous          bool   `json:"anonymous"`
	LanguagePreference string `json:"language_preference,omitempty"`
	EvidenceHash       string `json:"evidence_hash,omitempty"`

	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// HasSuspectInfo reports whether any suspect attribute is present.
func (r *Report) HasSuspectInfo() bool {
	return r.SuspectPhone != "" || r.SuspectEmail != "" || r.SuspectUPIID != "" ||
		r.SuspectAccountNumber != "" || r.SuspectBankName != "" ||
		r.SuspectWebsiteURL != "" || r.SuspectOtherDetails != ""
}

// HasReporterContact is false for anonymous reports.
func (r *Report) HasReporterContact() bool {
	return r.Phone != "" && r.Phone != AnonymousPhone
}

// Location renders "City, State", tolerating missing parts.
func (r *Report) Location() string {
	switch {
	case r.LocationCity != "" && r.LocationState != "":
		return r.LocationCity + ", " + r.LocationState
	case r.LocationCity != "":
		return r.LocationCity
	default:
		return r.LocationState
	}
}

// Note is a case annotation attached to a report.
type Note struct {
	ID        ID        `json:"id"`
	FullName  string    `json:"full_name"`
	Note      string    `json:"note"`
	Type      string    `json:"type,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}

// ReportPage is one page of the report list.
type ReportPage struct {
	Reports []Report `json:"reports"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	PerPage int      `json:"per_page"`
}

// TotalPages is at least 1 so an empty list still renders a single page.
func (p *ReportPage) TotalPages() int {
	if p.PerPage <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// ReportDetail is a full report with its notes, oldest first.
type ReportDetail struct {
	Report *Report `json:"report"`
	Notes  []Note  `json:"notes"`
}

type StatusUpdate struct {
	Status   ReportStatus   `json:"status"`
	Priority ReportPriority `json:"priority"`
}

type NoteRequest struct {
	Note string `json:"note"`
	Type string `json:"type"`
}
