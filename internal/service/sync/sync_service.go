// internal/service/sync/sync_service.go
package sync

import (
	"context"
	"time"

	"alamin-service/internal/domain/client"
	"alamin-service/internal/domain/insurance"
	"alamin-service/internal/domain/snapshot"
	wstypes "alamin-service/internal/domain/websocket"
	"alamin-service/internal/merge"
	"alamin-service/internal/pkg/cache"
	"alamin-service/internal/repository/postgres"
	ws "alamin-service/internal/websocket"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SyncService exports and imports full snapshots of both collections.
// Imports merge rather than replace: for every record the newest version
// wins, whether it came from the document or already lived in the store.
type SyncService struct {
	db             *postgres.DB
	clientRepo     *postgres.ClientRepository
	insuranceRepo  *postgres.InsuranceRepository
	clientCache    *cache.Cache[[]client.Client]
	insuranceCache *cache.Cache[[]insurance.Company]
	publisher      ws.Publisher
	logger         *zap.Logger
	now            func() time.Time
}

func NewSyncService(
	db *postgres.DB,
	clientRepo *postgres.ClientRepository,
	insuranceRepo *postgres.InsuranceRepository,
	clientCache *cache.Cache[[]client.Client],
	insuranceCache *cache.Cache[[]insurance.Company],
	publisher ws.Publisher,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		db:             db,
		clientRepo:     clientRepo,
		insuranceRepo:  insuranceRepo,
		clientCache:    clientCache,
		insuranceCache: insuranceCache,
		publisher:      publisher,
		logger:         logger,
		now:            time.Now,
	}
}

// ImportReport tells the caller what an import changed.
type ImportReport struct {
	NewClients       int `json:"newClients"`
	UpdatedClients   int `json:"updatedClients"`
	NewInsurance     int `json:"newInsurance"`
	UpdatedInsurance int `json:"updatedInsurance"`
	TotalClients     int `json:"totalClients"`
	TotalInsurance   int `json:"totalInsurance"`
}

// Export produces the full backup document.
func (s *SyncService) Export(ctx context.Context) (*snapshot.Snapshot, error) {
	clients, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := s.insuranceRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &snapshot.Snapshot{
		Clients:            clients,
		InsuranceCompanies: companies,
		ExportDate:         s.now(),
	}, nil
}

// Import merges a backup document into the store. Both collections are
// merged and persisted inside a single transaction; a bad document changes
// nothing.
func (s *SyncService) Import(ctx context.Context, doc *snapshot.ImportDocument) (*ImportReport, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	localClients, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	localCompanies, err := s.insuranceRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	mergedClients, err := merge.Collections(localClients, *doc.Clients)
	if err != nil {
		return nil, err
	}
	mergedCompanies, err := merge.Collections(localCompanies, *doc.InsuranceCompanies)
	if err != nil {
		return nil, err
	}

	clientStats := merge.Diff(localClients, mergedClients)
	companyStats := merge.Diff(localCompanies, mergedCompanies)

	err = s.db.WithTx(ctx, func(tx pgx.Tx) error {
		for i := range mergedClients {
			if err := s.clientRepo.UpsertInTx(ctx, tx, &mergedClients[i]); err != nil {
				return err
			}
		}
		for i := range mergedCompanies {
			if err := s.insuranceRepo.UpsertInTx(ctx, tx, &mergedCompanies[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.clientCache.Invalidate()
	s.insuranceCache.Invalidate()

	s.publisher.SyncCompleted(wstypes.SyncCompletedData{
		NewClients:       clientStats.New,
		UpdatedClients:   clientStats.Updated,
		NewInsurance:     companyStats.New,
		UpdatedInsurance: companyStats.Updated,
	})

	s.logger.Info("snapshot imported",
		zap.Int("new_clients", clientStats.New),
		zap.Int("updated_clients", clientStats.Updated),
		zap.Int("new_insurance", companyStats.New),
		zap.Int("updated_insurance", companyStats.Updated),
	)

	return &ImportReport{
		NewClients:       clientStats.New,
		UpdatedClients:   clientStats.Updated,
		NewInsurance:     companyStats.New,
		UpdatedInsurance: companyStats.Updated,
		TotalClients:     len(mergedClients),
		TotalInsurance:   len(mergedCompanies),
	}, nil
}
