package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategoryType string

type TransactionType string

type AccountType string

type FamilyRelation string

const (
	CategoryTypeNeeds   CategoryType = "needs"
	CategoryTypeWants   CategoryType = "wants"
	CategoryTypeSavings CategoryType = "savings"

	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"

	AccountTypeIndividual AccountType = "individual"
	AccountTypeFamily     AccountType = "family"

	FamilyRelationSpouse  FamilyRelation = "spouse"
	FamilyRelationChild   FamilyRelation = "child"
	FamilyRelationParent  FamilyRelation = "parent"
	FamilyRelationSibling FamilyRelation = "sibling"
	FamilyRelationOther   FamilyRelation = "other"
)

type User struct {
	ID                 uuid.UUID       `json:"id"`
	Email              string          `json:"email"`
	PasswordHash       string          `json:"-"`
	FirstName          string          `json:"first_name"`
	LastName           string          `json:"last_name"`
	IsFamilyMember     bool            `json:"is_family_member"`
	MustChangePassword bool            `json:"must_change_password"`
	FamilyRelation     *FamilyRelation `json:"family_relation,omitempty"`
	MasterUserID       *uuid.UUID      `json:"master_user_id,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// FullName возвращает полное имя пользователя для подстановки в person_name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type Profile struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"user_id"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	Currency      string           `json:"currency"`
	BankAccount   *string          `json:"bank_account,omitempty"`
	Address       *string          `json:"address,omitempty"`
	Country       string           `json:"country"`
	AccountType   AccountType      `json:"account_type"`
	MonthlyIncome *decimal.Decimal `json:"monthly_income,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type Category struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	IsCustom  bool         `json:"is_custom"`
	CreatedAt time.Time    `json:"created_at"`
}

// Transaction хранит дату как календарный день без компонента времени.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	ProfileID   uuid.UUID       `json:"profile_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"transaction_type"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	PersonName  string          `json:"person_name"`
	PaymentMode string          `json:"payment_mode"`
	BankApp     *string         `json:"bank_app,omitempty"`
	Description *string         `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Budget struct {
	ID             uuid.UUID       `json:"id"`
	ProfileID      uuid.UUID       `json:"profile_id"`
	CategoryType   CategoryType    `json:"category_type"`
	BudgetedAmount decimal.Decimal `json:"budgeted_amount"`
	Month          string          `json:"month"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}
