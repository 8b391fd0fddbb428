package crm

import (
	"strings"
	"time"

	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DealStage represents where a contact sits in the sales funnel
type DealStage string

const (
	DealStageLead        DealStage = "lead"
	DealStageContacted   DealStage = "contacted"
	DealStageNegotiating DealStage = "negotiating"
	DealStageCustomer    DealStage = "customer"
	DealStageLost        DealStage = "lost"
)

// Valid reports whether the stage is a known value
func (s DealStage) Valid() bool {
	switch s {
	case DealStageLead, DealStageContacted, DealStageNegotiating, DealStageCustomer, DealStageLost:
		return true
	}
	return false
}

// Contact is a CRM entry: a customer or prospect that owns orders and a
// message history.
type Contact struct {
	shared.TenantAggregateRoot
	Name  string          `gorm:"type:varchar(200);not null"`
	Phone string          `gorm:"type:varchar(50);index"`
	Email string          `gorm:"type:varchar(200)"`
	Tags  string          `gorm:"type:text"` // comma-separated free-form tags
	Stage DealStage       `gorm:"type:varchar(20);not null;default:'lead'"`
	Value decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a new contact in the lead stage
func NewContact(tenantID uuid.UUID, name, phone string) (*Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Contact name cannot be empty")
	}
	return &Contact{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Phone:               strings.TrimSpace(phone),
		Stage:               DealStageLead,
		Value:               decimal.Zero,
	}, nil
}

// Rename changes the contact's display name
func (c *Contact) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("VALIDATION_FAILED", "Contact name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}

// MoveToStage advances or regresses the contact in the funnel
func (c *Contact) MoveToStage(stage DealStage) error {
	if !stage.Valid() {
		return shared.NewDomainError("VALIDATION_FAILED", "Unknown deal stage")
	}
	c.Stage = stage
	c.UpdatedAt = time.Now()
	return nil
}

// SetValue updates the estimated deal value
func (c *Contact) SetValue(value decimal.Decimal) error {
	if value.IsNegative() {
		return shared.NewDomainError("VALIDATION_FAILED", "Deal value cannot be negative")
	}
	c.Value = value
	c.UpdatedAt = time.Now()
	return nil
}

// TagList splits the free-form tag field into individual tags
func (c *Contact) TagList() []string {
	if strings.TrimSpace(c.Tags) == "" {
		return nil
	}
	parts := strings.Split(c.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ContactWithLastMessage is the per-request conversation read model: the
// contact, its most recent message, and how many inbound messages have not
// reached read status. It is computed on demand and never cached.
type ContactWithLastMessage struct {
	Contact     Contact
	LastMessage *Message
	UnreadCount int64
}
