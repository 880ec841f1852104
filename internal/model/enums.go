package model

type Role string

const (
	RoleWoman  Role = "woman"
	RolePolice Role = "police"
	RoleParent Role = "parent"
)

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleWoman, RolePolice, RoleParent:
		return true
	}
	return false
}

type IncidentStatus string

const (
	IncidentStatusPending    IncidentStatus = "pending"
	IncidentStatusInProgress IncidentStatus = "in_progress"
	IncidentStatusResolved   IncidentStatus = "resolved"
	IncidentStatusClosed     IncidentStatus = "closed"
)

func ValidIncidentStatus(s string) bool {
	switch IncidentStatus(s) {
	case IncidentStatusPending, IncidentStatusInProgress, IncidentStatusResolved, IncidentStatusClosed:
		return true
	}
	return false
}

type MessageType string

const (
	MessageTypeText     MessageType = "text"
	MessageTypeImage    MessageType = "image"
	MessageTypeLocation MessageType = "location"
	MessageTypeAlert    MessageType = "alert"
)

func ValidMessageType(t string) bool {
	switch MessageType(t) {
	case MessageTypeText, MessageTypeImage, MessageTypeLocation, MessageTypeAlert:
		return true
	}
	return false
}

// Incident priority levels: 1=low, 2=medium, 3=high, 4=critical.
const (
	PriorityLow      = 1
	PriorityMedium   = 2
	PriorityHigh     = 3
	PriorityCritical = 4
)
