package model

import "time"

type Senior struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	PasswordHash    string     `json:"-"`
	GuardianContact string     `json:"guardianContact"`
	GuardianEmail   string     `json:"guardianEmail"`
	LastCheckIn     *time.Time `json:"lastCheckIn"`
	Region          Region     `json:"region"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// NewSenior is the validated input for inserting a senior row.
type NewSenior struct {
	Name            string
	PasswordHash    string
	GuardianContact string
	GuardianEmail   string
	Region          Region
}

// CheckedInSince reports whether the senior checked in at or after cutoff.
func (s *Senior) CheckedInSince(cutoff time.Time) bool {
	return s.LastCheckIn != nil && !s.LastCheckIn.Before(cutoff)
}
