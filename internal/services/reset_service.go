package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"school_transport/internal/messaging"
	"school_transport/internal/metrics"
	"school_transport/internal/models"
)

const DefaultResetCodeTTL = 15 * time.Minute

// ResetService issues and checks the four-digit codes of the forgot-password
// flow. Codes are not consumed on verification; they stay valid until they
// expire.
type ResetService struct {
	db         *gorm.DB
	dispatcher *messaging.Dispatcher
	email      messaging.Sender
	sms        messaging.Sender
	ttl        time.Duration
	now        func() time.Time
	newCode    func() (string, error)
}

type ResetOption func(*ResetService)

func WithResetClock(now func() time.Time) ResetOption {
	return func(s *ResetService) { s.now = now }
}

func WithResetTTL(ttl time.Duration) ResetOption {
	return func(s *ResetService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithCodeGenerator(gen func() (string, error)) ResetOption {
	return func(s *ResetService) { s.newCode = gen }
}

func NewResetService(db *gorm.DB, dispatcher *messaging.Dispatcher, email, sms messaging.Sender, opts ...ResetOption) *ResetService {
	s := &ResetService{
		db:         db,
		dispatcher: dispatcher,
		email:      email,
		sms:        sms,
		ttl:        DefaultResetCodeTTL,
		now:        time.Now,
		newCode:    GenerateResetCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateResetCode returns a uniformly random code in 1000..9999.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("generate reset code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}

// ResetRequest describes an issued code without revealing it.
type ResetRequest struct {
	UserID  uint   `json:"id"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Channel string `json:"-"`
}

type VerifiedCode struct {
	UserID uint
	Email  string
	Code   string
}

func (s *ResetService) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// RequestReset finds the account whose email or phone equals contact, stores
// a fresh code and queues its delivery. The code goes by email when contact
// is the account's email, by SMS otherwise. Delivery failures do not fail
// the request.
func (s *ResetService) RequestReset(ctx context.Context, contact string) (*ResetRequest, error) {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return nil, invalid("email or phone is required")
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? OR phone = ?", contact, contact).
		Order("id").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user for reset: %w", err)
	}

	code, err := s.newCode()
	if err != nil {
		return nil, err
	}
	reset := models.PasswordReset{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: s.clock().Add(s.ttl),
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&reset).Error; err != nil {
		return nil, fmt.Errorf("store reset code: %w", err)
	}

	req := &ResetRequest{UserID: user.ID, Email: user.Email, Phone: user.Phone}
	switch {
	case user.Email == contact:
		req.Channel = messaging.ChannelEmail
		s.dispatcher.Dispatch(req.Channel, s.email, messaging.Message{
			To:      user.Email,
			Subject: "Password reset code",
			Body:    fmt.Sprintf("Your password reset code is %s. It expires in %d minutes.", code, int(s.ttl.Minutes())),
		})
	case user.Phone == contact:
		req.Channel = messaging.ChannelSMS
		s.dispatcher.Dispatch(req.Channel, s.sms, messaging.Message{
			To:   user.Phone,
			Body: fmt.Sprintf("Your reset code: %s", code),
		})
	}
	if req.Channel != "" {
		metrics.ResetCodesIssuedTotal.WithLabelValues(req.Channel).Inc()
	}
	return req, nil
}

// VerifyCode succeeds when the user holds this code and it has not expired.
// A code is expired from the instant now reaches its expiry.
func (s *ResetService) VerifyCode(ctx context.Context, userID uint, code string) (*VerifiedCode, error) {
	code = strings.TrimSpace(code)
	if userID == 0 || code == "" {
		return nil, invalid("user id and code are required")
	}

	var reset models.PasswordReset
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? AND code = ? AND expires_at > ?", userID, code, s.clock()).
		Order("expires_at DESC").
		First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidOrExpiredCode
		}
		return nil, fmt.Errorf("verify reset code: %w", err)
	}

	return &VerifiedCode{UserID: reset.UserID, Email: reset.User.Email, Code: reset.Code}, nil
}
