package publisher

import (
	"errors"
	"strings"
	"time"

	"newsapi-backend/internal/shared/utils"
	"newsapi-backend/pkg/hash"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// RegisterRequest - POST /auth/register
type RegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	WebhookURL  *string `json:"webhookUrl"`
}

// Normalize trims input and lower-cases the email. Blank optional fields become nil.
func (r *RegisterRequest) Normalize() {
	r.Email = normalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.Description = trimmedOrNil(r.Description)
	r.WebhookURL = trimmedOrNil(r.WebhookURL)
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
			validation.Length(3, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.RuneLength(6, 128).Error("password must be 6-128 characters"),
			validation.By(withinBcryptLimit),
		),
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(2, 255).Error("name must be at least 2 characters"),
		),
		validation.Field(&r.WebhookURL,
			utils.HTTPURL.Error("webhookUrl must be a valid URL"),
		),
	)
}

// LoginRequest - POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateWebhookRequest - PUT /me/webhook
type UpdateWebhookRequest struct {
	WebhookURL string `json:"webhookUrl"`
}

func (r UpdateWebhookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.WebhookURL,
			validation.Required.Error("webhookUrl is required"),
			utils.HTTPURL.Error("webhookUrl must be a valid URL"),
		),
	)
}

// PublisherResponse is the public view of a publisher. Never carries the password hash.
type PublisherResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	WebhookURL  *string   `json:"webhookUrl"`
	NewsCount   int       `json:"newsCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	Publisher PublisherResponse `json:"publisher"`
}

func ToResponse(p *Publisher, newsCount int) PublisherResponse {
	return PublisherResponse{
		ID:          p.ID,
		Email:       p.Email,
		Name:        p.Name,
		Description: p.Description,
		WebhookURL:  p.WebhookURL,
		NewsCount:   newsCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// bcrypt refuses inputs longer than hash.MaxPasswordBytes; multi-byte runes count per byte
func withinBcryptLimit(value interface{}) error {
	p, _ := value.(string)
	if len(p) > hash.MaxPasswordBytes {
		return errors.New("password must be at most 72 bytes")
	}
	return nil
}
