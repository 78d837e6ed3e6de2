package patient

import "time"

// Patient maps to the patients table. The patient_id is chosen by the
// registering caller and is the key all dependent rows reference; the serial
// id is internal.
type Patient struct {
	ID                    int64     `db:"id" json:"-"`
	PatientID             string    `db:"patient_id" json:"patient_id"`
	FirstName             string    `db:"first_name" json:"first_name"`
	LastName              string    `db:"last_name" json:"last_name"`
	DateOfBirth           time.Time `db:"date_of_birth" json:"date_of_birth"`
	Gender                string    `db:"gender" json:"gender"`
	Phone                 *string   `db:"phone" json:"phone,omitempty"`
	Email                 *string   `db:"email" json:"email,omitempty"`
	Address               *string   `db:"address" json:"address,omitempty"`
	BloodType             *string   `db:"blood_type" json:"blood_type,omitempty"`
	Allergies             *string   `db:"allergies" json:"allergies,omitempty"`
	EmergencyContactName  *string   `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string   `db:"emergency_contact_phone" json:"emergency_contact_phone,omitempty"`
	MedicalHistory        *string   `db:"medical_history" json:"medical_history,omitempty"`
	CurrentMedications    *string   `db:"current_medications" json:"current_medications,omitempty"`
	CreatedDate           time.Time `db:"created_date" json:"created_date"`
}

// DisplayName returns the patient's full name as denormalized onto
// activity rows.
func (p *Patient) DisplayName() string {
	return p.FirstName + " " + p.LastName
}

// AgeAt returns the patient's age in whole years at the given date,
// correcting for a birthday that has not yet occurred this year.
func (p *Patient) AgeAt(now time.Time) int {
	age := now.Year() - p.DateOfBirth.Year()
	if now.Month() < p.DateOfBirth.Month() ||
		(now.Month() == p.DateOfBirth.Month() && now.Day() < p.DateOfBirth.Day()) {
		age--
	}
	return age
}
