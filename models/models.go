package models

import "time"

type TenderStatus string

const (
	TenderOpen     TenderStatus = "open"
	TenderClosed   TenderStatus = "closed"
	TenderAssigned TenderStatus = "assigned"
)

func ValidTenderStatus(s TenderStatus) bool {
	switch s {
	case TenderOpen, TenderClosed, TenderAssigned:
		return true
	default:
		return false
	}
}

type TenderType string

const (
	TenderDesign       TenderType = "design"
	TenderConstruction TenderType = "construction"
	TenderService      TenderType = "service"
)

func ValidTenderType(t TenderType) bool {
	switch t {
	case TenderDesign, TenderConstruction, TenderService:
		return true
	default:
		return false
	}
}

type LotStatus string

const (
	LotPending    LotStatus = "pending"
	LotAssigned   LotStatus = "assigned"
	LotInProgress LotStatus = "in_progress"
	LotCompleted  LotStatus = "completed"
)

func ValidLotStatus(s LotStatus) bool {
	switch s {
	case LotPending, LotAssigned, LotInProgress, LotCompleted:
		return true
	default:
		return false
	}
}

type BidStatus string

const (
	BidPending   BidStatus = "pending"
	BidApproved  BidStatus = "approved"
	BidRejected  BidStatus = "rejected"
	BidWithdrawn BidStatus = "withdrawn"
)

func ValidBidStatus(s BidStatus) bool {
	switch s {
	case BidPending, BidApproved, BidRejected, BidWithdrawn:
		return true
	default:
		return false
	}
}

type SolvencyCategory string

const (
	SolvencyExcellent SolvencyCategory = "excellent"
	SolvencyAverage   SolvencyCategory = "average"
	SolvencyAtRisk    SolvencyCategory = "at_risk"
)

func ValidSolvencyCategory(c SolvencyCategory) bool {
	switch c {
	case SolvencyExcellent, SolvencyAverage, SolvencyAtRisk:
		return true
	default:
		return false
	}
}

// Project is a construction programme published by an owner. Its status and
// progress are projections over the tenders it contains.
type Project struct {
	ID              string    `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Type            string    `db:"type" json:"type"`
	ClientRef       string    `db:"client_ref" json:"clientRef"`
	Location        string    `db:"location" json:"location"`
	EstimatedBudget float64   `db:"estimated_budget" json:"estimatedBudget"`
	Status          string    `db:"status" json:"status"`
	StartDate       time.Time `db:"start_date" json:"startDate"`
	EndDate         time.Time `db:"end_date" json:"endDate"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"-"`
}

// Tender is a project's call for work on a package ("appel d'offres"),
// divided into lots. Status is derived from lot state; the column is a
// cached projection refreshed by the service layer.
type Tender struct {
	ID              string       `db:"id" json:"id"`
	ProjectID       string       `db:"project_id" json:"projectId"`
	Name            string       `db:"name" json:"name"`
	Type            TenderType   `db:"type" json:"type"`
	Status          TenderStatus `db:"status" json:"status"`
	Deadline        time.Time    `db:"deadline" json:"deadline"`
	EstimatedBudget float64      `db:"estimated_budget" json:"estimatedBudget"`
	CreatedAt       time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time    `db:"updated_at" json:"-"`
}

// Lot is a discrete work package within a tender, awarded independently.
// WorkStarted and WorkCompleted are execution-phase flags set by site
// tracking; they only matter once the lot is assigned.
type Lot struct {
	ID                string    `db:"id" json:"id"`
	TenderID          string    `db:"tender_id" json:"tenderId"`
	Name              string    `db:"name" json:"name"`
	Description       string    `db:"description" json:"description"`
	EstimatedBudget   float64   `db:"estimated_budget" json:"estimatedBudget"`
	Status            LotStatus `db:"status" json:"status"`
	AssignedCompanyID string    `db:"assigned_company_id" json:"assignedCompanyId,omitempty"`
	SurfaceArea       float64   `db:"surface_area" json:"surfaceArea"`
	DwellingCount     float64   `db:"dwelling_count" json:"dwellingCount"`
	WorkStarted       bool      `db:"work_started" json:"workStarted"`
	WorkCompleted     bool      `db:"work_completed" json:"workCompleted"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"-"`
}

// Bid is a contractor's priced response to a lot (a "devis"). Compliance and
// solvency are assessed by an external reviewer and stored verbatim.
type Bid struct {
	ID             string           `db:"id" json:"id"`
	LotID          string           `db:"lot_id" json:"lotId"`
	CompanyID      string           `db:"company_id" json:"companyId"`
	CompanyName    string           `db:"company_name" json:"companyName"`
	SubmissionDate time.Time        `db:"submission_date" json:"submissionDate"`
	Amount         float64          `db:"amount" json:"amount"`
	Compliant      bool             `db:"compliant" json:"compliant"`
	Solvency       SolvencyCategory `db:"solvency" json:"solvency"`
	AdminScore     int              `db:"admin_score" json:"adminScore"`
	Status         BidStatus        `db:"status" json:"status"`
	Selected       bool             `db:"selected" json:"selected"`
	Version        int              `db:"version" json:"version"`
	CreatedAt      time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time        `db:"updated_at" json:"-"`
}

// QuoteVersion is a retained historical revision of a bid's amount, kept for
// audit after a newer amount supersedes it.
type QuoteVersion struct {
	ID        string    `db:"id" json:"id"`
	BidID     string    `db:"bid_id" json:"bidId"`
	Version   int       `db:"version" json:"version"`
	Amount    float64   `db:"amount" json:"amount"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
