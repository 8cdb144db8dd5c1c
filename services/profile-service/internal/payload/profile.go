package payload

import (
	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/model"
)

type RegisterRequest struct {
	PersonalInfo      model.PersonalInfo   `json:"personalInfo"`
	EmploymentHistory []model.Employment   `json:"employmentHistory"`
	AdditionalInfo    model.Additional     `json:"additionalInfo"`
	LoginDetails      RegisterLoginDetails `json:"loginDetails"`
}

type RegisterLoginDetails struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is a partial profile. Absent objects and fields are left
// untouched; lists given are replaced as a whole.
type UpdateProfileRequest struct {
	PersonalInfo      *PersonalInfoPatch   `json:"personalInfo"`
	EmploymentHistory *[]model.Employment  `json:"employmentHistory"`
	AdditionalInfo    *AdditionalInfoPatch `json:"additionalInfo"`
	LoginDetails      *LoginDetailsPatch   `json:"loginDetails"`
}

type PersonalInfoPatch struct {
	FirstName             *string     `json:"firstName"`
	LastName              *string     `json:"lastName"`
	DateOfBirth           *model.Date `json:"dateOfBirth"`
	PlaceOfBirth          *string     `json:"placeOfBirth"`
	Nationality           *string     `json:"nationality"`
	EducationalBackground *[]string   `json:"educationalBackground"`
}

type AdditionalInfoPatch struct {
	Interests *[]string `json:"interests"`
	Goals     *[]string `json:"goals"`
}

type LoginDetailsPatch struct {
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password"`
}
