package model

import (
	"time"

	"github.com/lib/pq"
)

type Incident struct {
	ID                string         `db:"id" json:"id"`
	CaseNumber        string         `db:"case_number" json:"caseNumber"`
	ReporterID        string         `db:"reporter_id" json:"reporterId"`
	AssignedOfficerID *string        `db:"assigned_officer_id" json:"assignedOfficerId,omitempty"`
	PoliceStationID   *string        `db:"police_station_id" json:"policeStationId,omitempty"`
	Title             string         `db:"title" json:"title"`
	Description       string         `db:"description" json:"description"`
	IncidentType      *string        `db:"incident_type" json:"incidentType,omitempty"`
	VehicleNumber     *string        `db:"vehicle_number" json:"vehicleNumber,omitempty"`
	LocationLat       *float64       `db:"location_lat" json:"locationLat,omitempty"`
	LocationLng       *float64       `db:"location_lng" json:"locationLng,omitempty"`
	LocationAddress   *string        `db:"location_address" json:"locationAddress,omitempty"`
	Status            IncidentStatus `db:"status" json:"status"`
	Priority          int            `db:"priority" json:"priority"`
	NotifyParent      bool           `db:"notify_parent" json:"notifyParent"`
	EvidenceURLs      pq.StringArray `db:"evidence_urls" json:"evidenceUrls,omitempty"`
	CreatedAt         time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updatedAt"`
	ResolvedAt        *time.Time     `db:"resolved_at" json:"resolvedAt,omitempty"`
}

type CreateIncidentParams struct {
	CaseNumber      string
	ReporterID      string
	PoliceStationID *string
	Title           string
	Description     string
	IncidentType    *string
	VehicleNumber   *string
	LocationLat     *float64
	LocationLng     *float64
	LocationAddress *string
	NotifyParent    bool
	EvidenceURLs    []string
	Priority        int
}

type UpdateIncidentParams struct {
	Status            *IncidentStatus
	Priority          *int
	AssignedOfficerID *string
}

// IncidentDetails is the public tracking view: the incident plus the
// non-sensitive attributes of the people and station attached to it.
type IncidentDetails struct {
	Incident
	ReporterName         *string `json:"reporterName,omitempty"`
	ReporterMobile       *string `json:"reporterMobile,omitempty"`
	AssignedOfficerName  *string `json:"assignedOfficerName,omitempty"`
	AssignedOfficerBadge *string `json:"assignedOfficerBadge,omitempty"`
	PoliceStationName    *string `json:"policeStationName,omitempty"`
	PoliceStationPhone   *string `json:"policeStationPhone,omitempty"`
}
