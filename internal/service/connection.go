package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/zhihungchen/FittedIn/internal/apperr"
	"github.com/zhihungchen/FittedIn/internal/model"
	"github.com/zhihungchen/FittedIn/internal/repository"
)

type ConnectionService struct {
	repo                repository.ConnectionRepository
	userRepo            repository.UserRepository
	notificationService *NotificationService
	activityService     *ActivityService
}

func NewConnectionService(
	repo repository.ConnectionRepository,
	userRepo repository.UserRepository,
	notificationService *NotificationService,
	activityService *ActivityService,
) *ConnectionService {
	return &ConnectionService{
		repo:                repo,
		userRepo:            userRepo,
		notificationService: notificationService,
		activityService:     activityService,
	}
}

// SendRequest creates a pending connection from requester to receiver. If
// the receiver already has a pending request towards the requester, that row
// is flipped to accepted instead of creating a duplicate. Any other existing
// row for the pair is a conflict.
func (s *ConnectionService) SendRequest(requesterID, receiverID string) (*model.Connection, error) {
	if requesterID == receiverID {
		return nil, apperr.InvalidOperation("cannot send a connection request to yourself")
	}

	receiver, err := s.userRepo.ByID(receiverID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to get receiver: %w", err)
	}

	existing, err := s.repo.ByPair(requesterID, receiverID)
	if err != nil && !errors.Is(err, repository.ErrConnectionNotFound) {
		return nil, fmt.Errorf("failed to check existing connection: %w", err)
	}
	if existing != nil {
		// Reciprocal pending request: accept it rather than duplicating.
		if existing.Status == model.ConnectionStatusPending && existing.RequesterID == receiverID {
			return s.accept(existing, requesterID)
		}
		return nil, apperr.Conflict("connection already exists")
	}

	now := time.Now()
	conn := &model.Connection{
		ID:          uuid.New().String(),
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		PairKey:     model.ConnectionPairKey(requesterID, receiverID),
		Status:      model.ConnectionStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.Create(conn)
	if err != nil {
		if errors.Is(err, repository.ErrConnectionExists) {
			// Lost a race against a concurrent request for the same pair.
			return nil, apperr.Conflict("connection already exists")
		}
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}

	requester, err := s.userRepo.ByID(requesterID)
	if err == nil {
		err = s.notificationService.Notify(
			receiver.ID,
			requesterID,
			model.NotificationConnectionRequest,
			"New connection request",
			fmt.Sprintf("%s wants to connect with you", requester.DisplayName),
			"connection",
			conn.ID,
		)
	}
	if err != nil {
		slog.Error("failed to notify connection request", "error", err, "connection_id", conn.ID)
	}

	return conn, nil
}

// Accept transitions a pending request to accepted. Only the receiver may
// accept.
func (s *ConnectionService) Accept(connectionID, userID string) (*model.Connection, error) {
	conn, err := s.byID(connectionID)
	if err != nil {
		return nil, err
	}

	if conn.ReceiverID != userID {
		return nil, apperr.Forbidden("only the receiver can accept a connection request")
	}

	return s.accept(conn, userID)
}

func (s *ConnectionService) accept(conn *model.Connection, acceptingUserID string) (*model.Connection, error) {
	if conn.Status != model.ConnectionStatusPending {
		return nil, apperr.InvalidOperation("connection request is not pending")
	}

	err := s.repo.UpdateStatus(conn.ID, model.ConnectionStatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to accept connection: %w", err)
	}
	conn.Status = model.ConnectionStatusAccepted
	conn.UpdatedAt = time.Now()

	accepter, userErr := s.userRepo.ByID(acceptingUserID)
	if userErr == nil {
		notifyErr := s.notificationService.Notify(
			conn.CounterpartID(acceptingUserID),
			acceptingUserID,
			model.NotificationConnectionAccepted,
			"Connection accepted",
			fmt.Sprintf("%s accepted your connection request", accepter.DisplayName),
			"connection",
			conn.ID,
		)
		if notifyErr != nil {
			slog.Error("failed to notify connection accepted", "error", notifyErr, "connection_id", conn.ID)
		}
	}

	for _, participant := range []string{conn.RequesterID, conn.ReceiverID} {
		logErr := s.activityService.Log(participant, model.ActivityConnectionAccepted, map[string]any{
			"connected_user_id": conn.CounterpartID(participant),
		}, "connection", conn.ID)
		if logErr != nil {
			slog.Error("failed to log connection activity", "error", logErr, "connection_id", conn.ID)
		}
	}

	return conn, nil
}

// Reject declines a pending request. Only the receiver may reject, and the
// row is kept so the pair cannot re-request (transitions never return to
// pending).
func (s *ConnectionService) Reject(connectionID, userID string) (*model.Connection, error) {
	conn, err := s.byID(connectionID)
	if err != nil {
		return nil, err
	}

	if conn.ReceiverID != userID {
		return nil, apperr.Forbidden("only the receiver can reject a connection request")
	}
	if conn.Status != model.ConnectionStatusPending {
		return nil, apperr.InvalidOperation("connection request is not pending")
	}

	err = s.repo.UpdateStatus(conn.ID, model.ConnectionStatusRejected)
	if err != nil {
		return nil, fmt.Errorf("failed to reject connection: %w", err)
	}
	conn.Status = model.ConnectionStatusRejected

	return conn, nil
}

// Block marks the connection blocked. Either participant may block.
func (s *ConnectionService) Block(connectionID, userID string) (*model.Connection, error) {
	conn, err := s.byID(connectionID)
	if err != nil {
		return nil, err
	}

	if !conn.Involves(userID) {
		return nil, apperr.Forbidden("not a participant of this connection")
	}
	if conn.Status == model.ConnectionStatusBlocked {
		return nil, apperr.InvalidOperation("connection is already blocked")
	}

	err = s.repo.UpdateStatus(conn.ID, model.ConnectionStatusBlocked)
	if err != nil {
		return nil, fmt.Errorf("failed to block connection: %w", err)
	}
	conn.Status = model.ConnectionStatusBlocked

	return conn, nil
}

// Remove deletes the connection row entirely. Either participant may remove.
func (s *ConnectionService) Remove(connectionID, userID string) error {
	conn, err := s.byID(connectionID)
	if err != nil {
		return err
	}

	if !conn.Involves(userID) {
		return apperr.Forbidden("not a participant of this connection")
	}

	err = s.repo.Delete(conn.ID)
	if err != nil {
		return fmt.Errorf("failed to remove connection: %w", err)
	}

	return nil
}

// Connections lists accepted connections with the counterpart user attached.
func (s *ConnectionService) Connections(userID string) ([]*model.ConnectionView, error) {
	conns, err := s.repo.AcceptedFor(userID)
	if err != nil {
		return nil, err
	}
	return s.withCounterparts(conns, userID)
}

// Pending lists incoming pending requests with the requester attached.
func (s *ConnectionService) Pending(userID string) ([]*model.ConnectionView, error) {
	conns, err := s.repo.PendingFor(userID)
	if err != nil {
		return nil, err
	}
	return s.withCounterparts(conns, userID)
}

func (s *ConnectionService) withCounterparts(conns []*model.Connection, userID string) ([]*model.ConnectionView, error) {
	views := make([]*model.ConnectionView, 0, len(conns))
	for _, conn := range conns {
		view := conn.View()
		counterpart, err := s.userRepo.ByID(conn.CounterpartID(userID))
		if err == nil {
			view.User = counterpart.PublicView()
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ConnectionService) byID(connectionID string) (*model.Connection, error) {
	conn, err := s.repo.ByID(connectionID)
	if err != nil {
		if errors.Is(err, repository.ErrConnectionNotFound) {
			return nil, apperr.NotFound("connection not found")
		}
		return nil, err
	}
	return conn, nil
}
