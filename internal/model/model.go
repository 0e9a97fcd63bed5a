package model

import (
	"errors"
	"time"
)

// Sentinel errors shared by every store implementation so upper layers never
// see driver-specific errors.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Roles. Admin and superadmin are interchangeable wherever privilege is
// checked; superadmin exists so a future role-management surface can
// distinguish them.
const (
	RoleStudent    = "student"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Issue categories and statuses.
const (
	IssueCategoryHostel    = "hostel"
	IssueCategoryWifi      = "wifi"
	IssueCategoryClassroom = "classroom"
	IssueCategoryOther     = "other"

	IssueStatusPending    = "pending"
	IssueStatusInProgress = "in-progress"
	IssueStatusResolved   = "resolved"
)

type Issue struct {
	ID          string
	Title       string
	Description string
	Category    string
	Status      string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined creator fields for listings; not stored on the issue row.
	CreatorName  string
	CreatorEmail string
}

// Lost & found types and statuses.
const (
	LostFoundTypeLost  = "lost"
	LostFoundTypeFound = "found"

	LostFoundStatusOpen     = "open"
	LostFoundStatusReturned = "returned"
)

type LostFoundItem struct {
	ID          string
	Title       string
	Description string
	Type        string
	Location    string
	Status      string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Post types: campus notices and events.
const (
	PostTypeNotice = "notice"
	PostTypeEvent  = "event"
)

type Post struct {
	ID          string
	Title       string
	Description string
	Type        string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
