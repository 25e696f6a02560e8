package service

import (
	"context"
	"strings"
	"time"

	"usherhub/internal/entity"
	"usherhub/internal/repository"
	"usherhub/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type RequestInput struct {
	ClientName     string
	ClientEmail    string
	ClientPhone    string
	EventDetails   string
	EventType      string
	SelectedUshers []uuid.UUID
}

type RequestUpdate struct {
	Status *entity.RequestStatus
	Notes  *string
}

type RequestService struct {
	requests repository.RequestRepository
	users    repository.UserRepository
	email    EmailSender
	log      *logrus.Logger
}

func NewRequestService(
	requests repository.RequestRepository,
	users repository.UserRepository,
	email EmailSender,
	log *logrus.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		users:    users,
		email:    email,
		log:      log,
	}
}

// Create records a client staffing inquiry. Every selected usher must exist
// and be active; the admin notification is dispatched without blocking and
// its failure never reaches the client.
func (s *RequestService) Create(ctx context.Context, input RequestInput) (*entity.Request, error) {
	if strings.TrimSpace(input.ClientName) == "" ||
		strings.TrimSpace(input.ClientEmail) == "" ||
		strings.TrimSpace(input.EventDetails) == "" {
		return nil, ErrInvalidInput
	}

	var ushers []entity.User
	if len(input.SelectedUshers) > 0 {
		found, err := s.users.FindActiveUshers(ctx, input.SelectedUshers)
		if err != nil {
			return nil, err
		}
		if len(found) != len(input.SelectedUshers) {
			return nil, ErrUshersUnavailable
		}
		ushers = found
	}

	eventType := strings.TrimSpace(input.EventType)
	if eventType == "" {
		eventType = "General Request"
	}

	request := &entity.Request{
		ClientName:     strings.TrimSpace(input.ClientName),
		ClientEmail:    utils.NormalizeEmail(input.ClientEmail),
		ClientPhone:    strings.TrimSpace(input.ClientPhone),
		EventDetails:   strings.TrimSpace(input.EventDetails),
		EventType:      eventType,
		SelectedUshers: ushers,
		Status:         entity.RequestStatusPending,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.notifyAdmins(request, ushers)
	return request, nil
}

func (s *RequestService) List(ctx context.Context, filter repository.RequestFilter) ([]entity.Request, int64, error) {
	return s.requests.List(ctx, filter)
}

func (s *RequestService) Get(ctx context.Context, id uuid.UUID) (*entity.Request, error) {
	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrNotFound
	}
	return request, nil
}

func (s *RequestService) Update(ctx context.Context, id uuid.UUID, update RequestUpdate) (*entity.Request, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Status != nil {
		switch *update.Status {
		case entity.RequestStatusPending, entity.RequestStatusApproved, entity.RequestStatusRejected:
			request.Status = *update.Status
		default:
			return nil, ErrInvalidInput
		}
	}
	if update.Notes != nil {
		request.Notes = *update.Notes
	}

	if err := s.requests.Update(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *RequestService) Delete(ctx context.Context, id uuid.UUID) error {
	request, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.requests.Delete(ctx, request.ID)
}

func (s *RequestService) notifyAdmins(request *entity.Request, ushers []entity.User) {
	if s.email == nil {
		return
	}
	snapshot := *request
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.email.SendRequestNotification(ctx, &snapshot, ushers); err != nil {
			s.log.WithError(err).WithField("request_id", snapshot.ID).
				Warn("request notification failed")
		}
	}()
}
