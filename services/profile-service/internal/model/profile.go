package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Profile represents a user profile document.
type Profile struct {
	ID                bson.ObjectID `json:"id"                bson:"_id,omitempty"`
	PersonalInfo      PersonalInfo  `json:"personalInfo"      bson:"personalInfo"`
	EmploymentHistory []Employment  `json:"employmentHistory" bson:"employmentHistory"`
	AdditionalInfo    Additional    `json:"additionalInfo"    bson:"additionalInfo"`
	LoginDetails      LoginDetails  `json:"loginDetails"      bson:"loginDetails"`
	CreatedAt         time.Time     `json:"createdAt"         bson:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"         bson:"updatedAt"`
}

type PersonalInfo struct {
	FirstName             string   `json:"firstName"             bson:"firstName"`
	LastName              string   `json:"lastName"              bson:"lastName"`
	DateOfBirth           *Date    `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	PlaceOfBirth          string   `json:"placeOfBirth"          bson:"placeOfBirth"`
	Nationality           string   `json:"nationality"           bson:"nationality"`
	EducationalBackground []string `json:"educationalBackground" bson:"educationalBackground"`
}

// Employment is a single entry of a profile's employment history. EndDate is nil
// for positions without a known end.
type Employment struct {
	JobTitle    string `json:"jobTitle"          bson:"jobTitle"`
	Project     string `json:"project"           bson:"project"`
	Role        string `json:"role"              bson:"role"`
	StartDate   *Date  `json:"startDate"         bson:"startDate"`
	EndDate     *Date  `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Ongoing     bool   `json:"ongoing"           bson:"ongoing"`
	CompanyName string `json:"companyName"       bson:"companyName"`
}

// Additional holds free-text interests and goals. Both are sets: order carries no
// meaning and duplicates are dropped before storage.
type Additional struct {
	Interests []string `json:"interests" bson:"interests"`
	Goals     []string `json:"goals"     bson:"goals"`
}

// LoginDetails holds the credentials of a profile. PasswordHash is never serialized to JSON.
type LoginDetails struct {
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-"     bson:"password"`
}
