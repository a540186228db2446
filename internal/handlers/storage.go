package handlers

import (
	"context"
	"time"

	"batitender/models"
)

type StorageInterface interface {
	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	GetProjects(ctx context.Context, limit, offset int) ([]models.Project, error)
	UpdateProjectStatus(ctx context.Context, id string, status string) error

	CreateTender(ctx context.Context, t *models.Tender) error
	GetTender(ctx context.Context, id string) (*models.Tender, error)
	GetTenders(ctx context.Context, types []models.TenderType, limit, offset int) ([]models.Tender, error)
	GetProjectTenders(ctx context.Context, projectID string) ([]models.Tender, error)
	UpdateTenderStatus(ctx context.Context, id string, status models.TenderStatus) error
	UpdateTenderDeadline(ctx context.Context, id string, deadline time.Time) error

	CreateLot(ctx context.Context, l *models.Lot) error
	GetLot(ctx context.Context, id string) (*models.Lot, error)
	GetTenderLots(ctx context.Context, tenderID string) ([]models.Lot, error)
	UpdateLotStatus(ctx context.Context, id string, status models.LotStatus, assignedCompanyID string) error
	SetLotWorkFlags(ctx context.Context, id string, started, completed bool) error

	CreateBid(ctx context.Context, b *models.Bid) error
	GetBid(ctx context.Context, id string) (*models.Bid, error)
	GetLotBids(ctx context.Context, lotID string) ([]models.Bid, error)
	ReviseBidAmount(ctx context.Context, b *models.Bid, newAmount float64) error
	GetQuoteVersions(ctx context.Context, bidID string) ([]models.QuoteVersion, error)
	SelectBid(ctx context.Context, id string) error
	UnselectBid(ctx context.Context, id string) error
	UpdateBidStatus(ctx context.Context, id string, status models.BidStatus) error
	WithdrawBid(ctx context.Context, id string) error
}
