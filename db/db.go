package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"batitender/models"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Project

func (s *Storage) CreateProject(ctx context.Context, p *models.Project) error {
	p.ID = uuid.New().String()
	p.Status = "open"
	query := `
        INSERT INTO project (id, name, type, client_ref, location, estimated_budget, status, start_date, end_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Type, p.ClientRef, p.Location, p.EstimatedBudget, p.Status, p.StartDate, p.EndDate).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (s *Storage) GetProject(ctx context.Context, id string) (*models.Project, error) {
	p := &models.Project{}
	query := `SELECT * FROM project WHERE id=$1`
	err := s.db.GetContext(ctx, p, query, id)
	return p, err
}

func (s *Storage) GetProjects(ctx context.Context, limit, offset int) ([]models.Project, error) {
	query := `SELECT * FROM project ORDER BY name ASC LIMIT $1 OFFSET $2`
	projects := []models.Project{}
	err := s.db.SelectContext(ctx, &projects, query, limit, offset)
	return projects, err
}

func (s *Storage) UpdateProjectStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE project SET status=$1, updated_at=NOW() WHERE id=$2`
	_, err := s.db.ExecContext(ctx, query, status, id)
	return err
}

// Tender

func (s *Storage) CreateTender(ctx context.Context, t *models.Tender) error {
	t.ID = uuid.New().String()
	t.Status = models.TenderOpen
	query := `
        INSERT INTO tender (id, project_id, name, type, status, deadline, estimated_budget)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		t.ID, t.ProjectID, t.Name, t.Type, t.Status, t.Deadline, t.EstimatedBudget).
		Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (s *Storage) GetTender(ctx context.Context, id string) (*models.Tender, error) {
	t := &models.Tender{}
	query := `SELECT * FROM tender WHERE id=$1`
	err := s.db.GetContext(ctx, t, query, id)
	return t, err
}

func (s *Storage) GetTenders(ctx context.Context, types []models.TenderType, limit, offset int) ([]models.Tender, error) {
	baseQuery := `SELECT * FROM tender`
	var args []interface{}
	filter := ""

	if len(types) > 0 {
		placeholders := make([]string, len(types))
		for i, v := range types {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args = append(args, v)
		}
		filter = fmt.Sprintf(" WHERE type IN (%s)", strings.Join(placeholders, ", "))
	}

	query := baseQuery + filter + " ORDER BY name ASC"
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	tenders := []models.Tender{}
	err := s.db.SelectContext(ctx, &tenders, query, args...)
	if err != nil {
		return nil, err
	}
	return tenders, nil
}

func (s *Storage) GetProjectTenders(ctx context.Context, projectID string) ([]models.Tender, error) {
	query := `SELECT * FROM tender WHERE project_id=$1 ORDER BY name ASC`
	tenders := []models.Tender{}
	err := s.db.SelectContext(ctx, &tenders, query, projectID)
	return tenders, err
}

func (s *Storage) UpdateTenderDeadline(ctx context.Context, id string, deadline time.Time) error {
	query := `UPDATE tender SET deadline=$1, updated_at=NOW() WHERE id=$2`
	_, err := s.db.ExecContext(ctx, query, deadline, id)
	return err
}

func (s *Storage) UpdateTenderStatus(ctx context.Context, id string, status models.TenderStatus) error {
	query := `UPDATE tender SET status=$1, updated_at=NOW() WHERE id=$2`
	_, err := s.db.ExecContext(ctx, query, status, id)
	return err
}

// Lot

func (s *Storage) CreateLot(ctx context.Context, l *models.Lot) error {
	l.ID = uuid.New().String()
	l.Status = models.LotPending
	query := `
        INSERT INTO lot (id, tender_id, name, description, estimated_budget, status, surface_area, dwelling_count)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		l.ID, l.TenderID, l.Name, l.Description, l.EstimatedBudget, l.Status, l.SurfaceArea, l.DwellingCount).
		Scan(&l.CreatedAt, &l.UpdatedAt)
}

func (s *Storage) GetLot(ctx context.Context, id string) (*models.Lot, error) {
	l := &models.Lot{}
	query := `SELECT * FROM lot WHERE id=$1`
	err := s.db.GetContext(ctx, l, query, id)
	return l, err
}

func (s *Storage) GetTenderLots(ctx context.Context, tenderID string) ([]models.Lot, error) {
	query := `SELECT * FROM lot WHERE tender_id=$1 ORDER BY name ASC`
	lots := []models.Lot{}
	err := s.db.SelectContext(ctx, &lots, query, tenderID)
	return lots, err
}

func (s *Storage) UpdateLotStatus(ctx context.Context, id string, status models.LotStatus, assignedCompanyID string) error {
	query := `UPDATE lot SET status=$1, assigned_company_id=$2, updated_at=NOW() WHERE id=$3`
	_, err := s.db.ExecContext(ctx, query, status, assignedCompanyID, id)
	return err
}

func (s *Storage) SetLotWorkFlags(ctx context.Context, id string, started, completed bool) error {
	query := `UPDATE lot SET work_started=$1, work_completed=$2, updated_at=NOW() WHERE id=$3`
	_, err := s.db.ExecContext(ctx, query, started, completed, id)
	return err
}

// Bid

func (s *Storage) CreateBid(ctx context.Context, b *models.Bid) error {
	b.ID = uuid.New().String()
	b.Status = models.BidPending
	b.Version = 1
	query := `
        INSERT INTO bid
            (id, lot_id, company_id, company_name, submission_date, amount, compliant, solvency, admin_score, status, version)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		b.ID, b.LotID, b.CompanyID, b.CompanyName, b.SubmissionDate, b.Amount,
		b.Compliant, b.Solvency, b.AdminScore, b.Status, b.Version).
		Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (s *Storage) GetBid(ctx context.Context, id string) (*models.Bid, error) {
	b := &models.Bid{}
	query := `SELECT * FROM bid WHERE id=$1`
	err := s.db.GetContext(ctx, b, query, id)
	return b, err
}

func (s *Storage) GetLotBids(ctx context.Context, lotID string) ([]models.Bid, error) {
	query := `SELECT * FROM bid WHERE lot_id=$1 ORDER BY submission_date ASC, id ASC`
	bids := []models.Bid{}
	err := s.db.SelectContext(ctx, &bids, query, lotID)
	return bids, err
}

// ReviseBidAmount stores the bid's current amount as a quote version for
// audit, then applies the new amount with an incremented version. Both
// writes happen in one transaction so a revision can never lose its history.
func (s *Storage) ReviseBidAmount(ctx context.Context, b *models.Bid, newAmount float64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	versionQuery := `
        INSERT INTO quote_versions (id, bid_id, version, amount)
        VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, versionQuery, uuid.New().String(), b.ID, b.Version, b.Amount); err != nil {
		return err
	}

	b.Version++
	b.Amount = newAmount
	updateQuery := `UPDATE bid SET amount=$1, version=$2, updated_at=NOW() WHERE id=$3`
	if _, err := tx.ExecContext(ctx, updateQuery, b.Amount, b.Version, b.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Storage) GetQuoteVersions(ctx context.Context, bidID string) ([]models.QuoteVersion, error) {
	query := `SELECT * FROM quote_versions WHERE bid_id=$1 ORDER BY version ASC`
	versions := []models.QuoteVersion{}
	err := s.db.SelectContext(ctx, &versions, query, bidID)
	return versions, err
}

// SelectBid marks a bid as the lot's winner. The partial unique index on
// bid(lot_id) WHERE selected rejects a second winner, so concurrent
// selections against the same lot serialize in the database rather than
// last-click-wins in memory.
func (s *Storage) SelectBid(ctx context.Context, id string) error {
	query := `UPDATE bid SET selected=true, status=$1, updated_at=NOW() WHERE id=$2`
	_, err := s.db.ExecContext(ctx, query, models.BidApproved, id)
	return err
}

func (s *Storage) UnselectBid(ctx context.Context, id string) error {
	query := `UPDATE bid SET selected=false, status=$1, updated_at=NOW() WHERE id=$2`
	_, err := s.db.ExecContext(ctx, query, models.BidPending, id)
	return err
}

func (s *Storage) UpdateBidStatus(ctx context.Context, id string, status models.BidStatus) error {
	query := `UPDATE bid SET status=$1, updated_at=NOW() WHERE id=$2`
	_, err := s.db.ExecContext(ctx, query, status, id)
	return err
}

// WithdrawBid is a status transition, never a delete: the row and its quote
// versions stay behind for audit. A withdrawn bid also loses any selection.
func (s *Storage) WithdrawBid(ctx context.Context, id string) error {
	query := `UPDATE bid SET status=$1, selected=false, updated_at=NOW() WHERE id=$2`
	_, err := s.db.ExecContext(ctx, query, models.BidWithdrawn, id)
	return err
}
