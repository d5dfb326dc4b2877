// internal/service/client/client_service.go
package client

import (
	"context"
	"fmt"
	"time"

	"alamin-service/internal/access"
	"alamin-service/internal/domain/client"
	"alamin-service/internal/domain/user"
	"alamin-service/internal/pkg/cache"
	xerrors "alamin-service/internal/pkg/errors"
	"alamin-service/internal/pkg/idgen"
	"alamin-service/internal/repository/postgres"
	ws "alamin-service/internal/websocket"

	"go.uber.org/zap"
)

type ClientService struct {
	repo      *postgres.ClientRepository
	cache     *cache.Cache[[]client.Client]
	idgen     *idgen.Generator
	publisher ws.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewClientService(
	repo *postgres.ClientRepository,
	cache *cache.Cache[[]client.Client],
	gen *idgen.Generator,
	publisher ws.Publisher,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		repo:      repo,
		cache:     cache,
		idgen:     gen,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns the clients the actor may see, via the snapshot cache.
func (s *ClientService) List(ctx context.Context, actor user.Actor) ([]client.Client, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return access.Filter(actor, all), nil
}

// Get returns one client the actor may see.
func (s *ClientService) Get(ctx context.Context, actor user.Actor, id int64) (*client.Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(actor, *c); err != nil {
		return nil, err
	}
	return c, nil
}

// Create builds a new record owned by the actor.
func (s *ClientService) Create(ctx context.Context, actor user.Actor, req *client.CreateClientRequest) (*client.Client, error) {
	now := s.now()

	c := &client.Client{
		ID:           s.idgen.NextID(),
		FullName:     req.FullName,
		Nationality:  req.Nationality,
		Passport:     req.Passport,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		Notes:        req.Notes,
		AddedBy:      actor.Username,
		ReminderDate: req.ReminderDate,
		CreatedAt:    now,
		LastUpdated:  now,
		Transactions: req.Transactions,
		Files:        req.Files,
	}

	for i := range c.Transactions {
		if c.Transactions[i].ID == 0 {
			c.Transactions[i].ID = s.idgen.NextTransactionID()
		}
		if c.Transactions[i].CreatedAt.IsZero() {
			c.Transactions[i].CreatedAt = now
		}
		if c.Transactions[i].Financial.Currency == "" {
			c.Transactions[i].Financial.Currency = client.CurrencyUSD
		}
	}
	for i := range c.Files {
		if c.Files[i].ID == 0 {
			c.Files[i].ID = s.idgen.NextID()
		}
		if c.Files[i].UploadDate.IsZero() {
			c.Files[i].UploadDate = now
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	s.publisher.ClientAdded(c.ID, c.AddedBy)

	s.logger.Info("client created",
		zap.Int64("client_id", c.ID),
		zap.String("added_by", c.AddedBy),
	)
	return c, nil
}

// Update applies a partial update to fields the request carries.
func (s *ClientService) Update(ctx context.Context, actor user.Actor, id int64, req *client.UpdateClientRequest) (*client.Client, error) {
	c, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		c.FullName = *req.FullName
	}
	if req.Nationality != nil {
		c.Nationality = *req.Nationality
	}
	if req.Passport != nil {
		c.Passport = *req.Passport
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.ReminderDate != nil {
		c.ReminderDate = req.ReminderDate
	}
	c.LastUpdated = s.now()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateBase(ctx, c); err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	s.publisher.ClientUpdated(c.ID)
	return c, nil
}

// Delete removes the record and everything it owns.
func (s *ClientService) Delete(ctx context.Context, actor user.Actor, id int64) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate()
	s.publisher.ClientDeleted(id)

	s.logger.Info("client deleted", zap.Int64("client_id", id))
	return nil
}

// AddTransaction appends one transaction to a client the actor may see.
func (s *ClientService) AddTransaction(ctx context.Context, actor user.Actor, clientID int64, req *client.TransactionRequest) (*client.Transaction, error) {
	if _, err := s.Get(ctx, actor, clientID); err != nil {
		return nil, err
	}

	now := s.now()
	t := client.Transaction{
		ID:              s.idgen.NextTransactionID(),
		Type:            req.Type,
		Status:          req.Status,
		Notes:           req.Notes,
		AppointmentDate: req.AppointmentDate,
		Financial: client.Financial{
			Due:      req.Due,
			Paid:     req.Paid,
			Currency: req.Currency,
		},
		CreatedAt: now,
	}
	if t.Financial.Currency == "" {
		t.Financial.Currency = client.CurrencyUSD
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.AddTransaction(ctx, clientID, t, now); err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	s.publisher.ClientUpdated(clientID)
	return &t, nil
}

// UpdateTransaction replaces one transaction on a client the actor may see.
func (s *ClientService) UpdateTransaction(ctx context.Context, actor user.Actor, clientID, transactionID int64, req *client.TransactionRequest) (*client.Transaction, error) {
	c, err := s.Get(ctx, actor, clientID)
	if err != nil {
		return nil, err
	}

	var existing *client.Transaction
	for i := range c.Transactions {
		if c.Transactions[i].ID == transactionID {
			existing = &c.Transactions[i]
			break
		}
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: transaction %d", xerrors.ErrNotFound, transactionID)
	}

	now := s.now()
	t := client.Transaction{
		ID:              transactionID,
		Type:            req.Type,
		Status:          req.Status,
		Notes:           req.Notes,
		AppointmentDate: req.AppointmentDate,
		Financial: client.Financial{
			Due:      req.Due,
			Paid:     req.Paid,
			Currency: req.Currency,
		},
		CreatedAt: existing.CreatedAt,
	}
	if t.Financial.Currency == "" {
		t.Financial.Currency = client.CurrencyUSD
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTransaction(ctx, clientID, t, now); err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	s.publisher.ClientUpdated(clientID)
	return &t, nil
}

// DeleteTransaction removes one transaction from a client the actor may see.
func (s *ClientService) DeleteTransaction(ctx context.Context, actor user.Actor, clientID, transactionID int64) error {
	if _, err := s.Get(ctx, actor, clientID); err != nil {
		return err
	}

	if err := s.repo.DeleteTransaction(ctx, clientID, transactionID, s.now()); err != nil {
		return err
	}

	s.cache.Invalidate()
	s.publisher.ClientUpdated(clientID)
	return nil
}

// AddFile stores an uploaded document on a client the actor may see.
func (s *ClientService) AddFile(ctx context.Context, actor user.Actor, clientID int64, req *client.UploadFileRequest) (*client.File, error) {
	if _, err := s.Get(ctx, actor, clientID); err != nil {
		return nil, err
	}

	now := s.now()
	f := client.File{
		ID:         s.idgen.NextID(),
		Name:       req.Name,
		Type:       req.Type,
		Size:       req.Size,
		Data:       req.Data,
		UploadDate: now,
	}

	if err := s.repo.AddFile(ctx, clientID, f, now); err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	s.publisher.ClientUpdated(clientID)
	return &f, nil
}

// GetFile returns one stored document including its payload.
func (s *ClientService) GetFile(ctx context.Context, actor user.Actor, clientID, fileID int64) (*client.File, error) {
	if _, err := s.Get(ctx, actor, clientID); err != nil {
		return nil, err
	}
	return s.repo.GetFile(ctx, clientID, fileID)
}

// DeleteFile removes one document from a client the actor may see.
func (s *ClientService) DeleteFile(ctx context.Context, actor user.Actor, clientID, fileID int64) error {
	if _, err := s.Get(ctx, actor, clientID); err != nil {
		return err
	}

	if err := s.repo.DeleteFile(ctx, clientID, fileID, s.now()); err != nil {
		return err
	}

	s.cache.Invalidate()
	s.publisher.ClientUpdated(clientID)
	return nil
}

// SetReminder sets or clears the reminder on a client the actor may see.
func (s *ClientService) SetReminder(ctx context.Context, actor user.Actor, clientID int64, at *time.Time) (*client.Client, error) {
	c, err := s.Get(ctx, actor, clientID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.repo.SetReminder(ctx, clientID, at, now); err != nil {
		return nil, err
	}
	c.ReminderDate = at
	c.LastUpdated = now

	s.cache.Invalidate()
	s.publisher.ClientUpdated(clientID)
	return c, nil
}

// AllUnfiltered returns every client regardless of actor. For snapshot export
// and the reminder scanner, which apply their own visibility rules.
func (s *ClientService) AllUnfiltered(ctx context.Context) ([]client.Client, error) {
	return s.loadAll(ctx)
}

func (s *ClientService) loadAll(ctx context.Context) ([]client.Client, error) {
	if cached, ok := s.cache.Get(); ok {
		return cached, nil
	}

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(all)
	return all, nil
}
