package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application is the borrower's loan application. The worker reads it,
// never mutates it.
type Application struct {
	ID                      primitive.ObjectID  `bson:"_id,omitempty"`
	ApplicationID           int64               `bson:"applicationId"`
	CustomerID              int64               `bson:"customerId"`
	AccountID               *primitive.ObjectID `bson:"accountId,omitempty"`
	StatusID                int                 `bson:"statusId"`
	ProductLineCode         int                 `bson:"productLineCode"`
	PartnerName             string              `bson:"partnerName,omitempty"`
	FullName                string              `bson:"fullName"`
	MotherMaidenName        string              `bson:"motherMaidenName,omitempty"`
	NIK                     string              `bson:"nik"`
	DOB                     *time.Time          `bson:"dob,omitempty"`
	JobType                 string              `bson:"jobType"`
	JobStart                *time.Time          `bson:"jobStart,omitempty"`
	MonthlyIncome           float64             `bson:"monthlyIncome"`
	Address                 string              `bson:"address,omitempty"`
	Zipcode                 string              `bson:"zipcode,omitempty"`
	IsJulover               bool                `bson:"isJulover"`
	IsJuloOneIOS            bool                `bson:"isJuloOneIos"`
	IsJuloStarter           bool                `bson:"isJuloStarter"`
	IsGrab                  bool                `bson:"isGrab"`
	IsPartnershipApp        bool                `bson:"isPartnershipApp"`
	IsWebApp                bool                `bson:"isWebApp"`
	IsForceFilledPartnerApp bool                `bson:"isForceFilledPartnerApp"`
	IsProven                bool                `bson:"isProven"`
	IsRepeatedMTL           bool                `bson:"isRepeatedMtl"`
	IsPremiumArea           bool                `bson:"isPremiumArea"`
	SubmissionForm          string              `bson:"submissionForm,omitempty"`
	HasIncomeProof          bool                `bson:"hasIncomeProof"`
	HasKTPImage             bool                `bson:"hasKtpImage"`
	HasSelfieImage          bool                `bson:"hasSelfieImage"`
	DukcapilNamePass        bool                `bson:"dukcapilNamePass"`
	DukcapilBirthdayPass    bool                `bson:"dukcapilBirthdayPass"`
	CreatedAt               time.Time           `bson:"createdAt"`
}

// ApplicationTag is a workflow tag attached to an application by upstream
// flows (revival programs, whitelists, autodebit state).
type ApplicationTag struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ApplicationID int64              `bson:"applicationId"`
	Tag           string             `bson:"tag"`
	IsActive      bool               `bson:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

// ApplicationStatusEvent is the Pub/Sub message that triggers limit generation.
type ApplicationStatusEvent struct {
	ApplicationID int64  `json:"applicationId"`
	StatusID      int    `json:"statusId"`
	StatusOld     int    `json:"statusOld"`
	ChangeReason  string `json:"changeReason"`
	GUID          string `json:"guid"`
}

// ApplicationNote is a free-text note left by upstream flows; the sonic
// affordability path keys off notes written by the bank-scrape model.
type ApplicationNote struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ApplicationID int64              `bson:"applicationId"`
	NoteText      string             `bson:"noteText"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

// ApplicationStatusHistory is one recorded status transition.
type ApplicationStatusHistory struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ApplicationID int64              `bson:"applicationId"`
	StatusOld     int                `bson:"statusOld"`
	StatusNew     int                `bson:"statusNew"`
	ChangeReason  string             `bson:"changeReason"`
	CreatedAt     time.Time          `bson:"createdAt"`
}
