package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/orgunit"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/ttlcache"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/repository/postgresql"
)

type Config struct {
	// Badges caches the pending count per org unit.
	Badges *ttlcache.Cache[string, int64]
	Logger *slog.Logger
	Now    func() time.Time
}

type LeaveServiceImpl struct {
	tx postgresql.TxRunner
	leave.LeaveGrantRepository
	hub    *sse.Hub
	config Config

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewLeaveService starts the badge invalidation listener; call Stop to end it.
func NewLeaveService(tx postgresql.TxRunner, grantRepo leave.LeaveGrantRepository, hub *sse.Hub, cfg Config) leave.LeaveService {
	if cfg.Badges == nil {
		cfg.Badges = ttlcache.New[string, int64](30 * time.Second)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	s := &LeaveServiceImpl{
		tx:                   tx,
		LeaveGrantRepository: grantRepo,
		hub:                  hub,
		config:               cfg,
		stopCh:               make(chan struct{}),
	}

	events, cleanup := hub.SubscribeAll()
	s.wg.Add(1)
	go s.invalidateBadges(events, cleanup)

	return s
}

// Decide implements leave.LeaveService.
func (s *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideRequest) (leave.LeaveGrantResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveGrantResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveGrantResponse{}, err
	}
	if !claims.IsAdmin() {
		return leave.LeaveGrantResponse{}, orgunit.ErrUnauthorizedAccess
	}

	status := leave.GrantStatusRejected
	if req.Approve {
		status = leave.GrantStatusApproved
	}
	decidedAt := s.config.Now().UTC()

	var grant leave.LeaveGrant
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		grant, err = s.LeaveGrantRepository.GetByIDForUpdate(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, leave.ErrLeaveGrantNotFound) {
				return err
			}
			return fmt.Errorf("failed to get leave grant: %w", err)
		}

		if grant.OrgUnitID != claims.OrgUnitID {
			return leave.ErrLeaveGrantOtherOrgUnit
		}
		if grant.Status != leave.GrantStatusSubmitted {
			return leave.ErrLeaveGrantAlreadyProcessed
		}

		if err := s.LeaveGrantRepository.UpdateStatus(txCtx, grant.ID, status, claims.SubjectID, req.Note, decidedAt); err != nil {
			return fmt.Errorf("failed to update leave grant: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveGrantResponse{}, err
	}

	grant.Status = status
	grant.DecisionNote = req.Note
	grant.DecidedBy = &claims.SubjectID
	grant.DecidedAt = &decidedAt

	dropped := s.hub.Publish(sse.Event{
		Topic: grant.OrgUnitID,
		Event: leave.EventLeaveDecided,
		Data: leave.DecidedEvent{
			GrantID:   grant.ID,
			SubjectID: grant.SubjectID,
			OrgUnitID: grant.OrgUnitID,
			Status:    string(grant.Status),
			StartDate: dateutil.DateKey(grant.StartDate),
			EndDate:   dateutil.DateKey(grant.EndDate),
		},
	})
	if dropped > 0 {
		s.config.Logger.Warn("leave.decided not delivered to every subscriber",
			slog.String("grant_id", grant.ID),
			slog.Int("dropped", dropped),
		)
	}

	s.config.Logger.Info("leave grant decided",
		slog.String("grant_id", grant.ID),
		slog.String("status", string(grant.Status)),
		slog.String("decided_by", claims.SubjectID),
	)

	return leave.NewLeaveGrantResponse(grant), nil
}

// PendingBadge implements leave.LeaveService.
func (s *LeaveServiceImpl) PendingBadge(ctx context.Context) (leave.PendingBadgeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.PendingBadgeResponse{}, err
	}

	if pending, ok := s.config.Badges.Get(claims.OrgUnitID); ok {
		return leave.PendingBadgeResponse{OrgUnitID: claims.OrgUnitID, Pending: pending, Cached: true}, nil
	}

	pending, err := s.LeaveGrantRepository.CountByStatus(ctx, claims.OrgUnitID, leave.GrantStatusSubmitted)
	if err != nil {
		return leave.PendingBadgeResponse{}, fmt.Errorf("failed to count pending leave grants: %w", err)
	}
	s.config.Badges.Set(claims.OrgUnitID, pending)

	return leave.PendingBadgeResponse{OrgUnitID: claims.OrgUnitID, Pending: pending}, nil
}

// Subscribe implements leave.LeaveService.
func (s *LeaveServiceImpl) Subscribe(ctx context.Context, orgUnitID string) (<-chan sse.Event, func()) {
	return s.hub.Subscribe(orgUnitID)
}

// Stop ends the badge invalidation listener.
func (s *LeaveServiceImpl) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
	})
}

// invalidateBadges drops the cached badge of every org unit an event is
// published for. Missed events are covered by the cache TTL.
func (s *LeaveServiceImpl) invalidateBadges(events <-chan sse.Event, cleanup func()) {
	defer s.wg.Done()
	defer cleanup()

	for {
		select {
		case <-s.stopCh:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Event == leave.EventLeaveDecided {
				s.config.Badges.Delete(ev.Topic)
			}
		}
	}
}
