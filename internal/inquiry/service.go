package inquiry

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"veilandvow-backend/internal/captcha"
)

var ErrCaptchaFailed = errors.New("captcha verification failed")

// Verifier checks an anti-spam challenge token before anything is stored.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// Notifier sends the studio a heads-up about a new inquiry.
type Notifier interface {
	SendInquiryAlert(ctx context.Context, inq Inquiry) (string, error)
}

type Service struct {
	repo     Repository
	verifier Verifier
	notifier Notifier
	location *time.Location
}

// NewService wires the inquiry pipeline. verifier and notifier may be nil
// when the corresponding integrations are unconfigured.
func NewService(repo Repository, verifier Verifier, notifier Notifier, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		verifier: verifier,
		notifier: notifier,
		location: location,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest, remoteIP string) (Inquiry, error) {
	if s.verifier != nil {
		if err := s.verifier.Verify(ctx, req.CaptchaToken, remoteIP); err != nil {
			if errors.Is(err, captcha.ErrChallengeFailed) {
				return Inquiry{}, ErrCaptchaFailed
			}
			return Inquiry{}, err
		}
	}

	inq := Inquiry{
		ID:        primitive.NewObjectID().Hex(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: time.Now().In(s.location),
	}

	if err := s.repo.Create(ctx, inq); err != nil {
		return Inquiry{}, err
	}

	return inq, nil
}

// Notify sends the studio alert; failures are the caller's to log, the
// inquiry is already stored.
func (s *Service) Notify(ctx context.Context, inq Inquiry) error {
	if s.notifier == nil {
		return nil
	}
	_, err := s.notifier.SendInquiryAlert(ctx, inq)
	return err
}

func (s *Service) List(ctx context.Context, limit, offset int64) ([]Inquiry, int64, error) {
	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
