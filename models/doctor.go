package models

import "time"

// Doctor is the profile the portal shows patients, plus the availability
// template the scheduling core works from. Profile editing (education,
// clinics, insurance and so on) happens outside the core; only the fields
// the booking flows read are modelled here.
type Doctor struct {
	ID                string        `bson:"id" json:"id"`
	UserID            string        `bson:"userId" json:"userId"`
	Name              string        `bson:"name" json:"name"`
	Specializations   []string      `bson:"specializations,omitempty" json:"specializations,omitempty"`
	Qualification     string        `bson:"qualification,omitempty" json:"qualification,omitempty"`
	ClinicName        string        `bson:"clinicName,omitempty" json:"clinicName,omitempty"`
	City              string        `bson:"city,omitempty" json:"city,omitempty"`
	ConsultationFee   float64       `bson:"consultationFee,omitempty" json:"consultationFee,omitempty"`
	AcceptingPatients bool          `bson:"acceptingPatients" json:"acceptingPatients"`
	Availability      *Availability `bson:"availability,omitempty" json:"availability,omitempty"`
	CreatedAt         time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// UpdateDoctorRequest carries the editable profile fields. A nil
// Availability leaves the stored template untouched.
type UpdateDoctorRequest struct {
	Name              *string       `json:"name,omitempty"`
	Specializations   []string      `json:"specializations,omitempty"`
	Qualification     *string       `json:"qualification,omitempty"`
	ClinicName        *string       `json:"clinicName,omitempty"`
	City              *string       `json:"city,omitempty"`
	ConsultationFee   *float64      `json:"consultationFee,omitempty"`
	AcceptingPatients *bool         `json:"acceptingPatients,omitempty"`
	Availability      *Availability `json:"availability,omitempty"`
}
