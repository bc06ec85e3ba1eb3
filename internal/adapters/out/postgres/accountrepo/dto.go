// Package accountrepo provides data transfer objects and mapping functions for account persistence.
package accountrepo

import (
	"time"

	"github.com/google/uuid"

	"livraison/internal/core/domain/model/account"
	"livraison/internal/core/domain/model/kernel"
)

// AccountDTO represents the database structure for persisting accounts.
// The unique index on phone backs the login-identifier invariant even when
// two registrations race past the application-level check.
type AccountDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:text"`
	Email        string    `gorm:"type:text"`
	Phone        string    `gorm:"type:varchar(32);uniqueIndex"`
	PasswordHash string    `gorm:"type:text"`
	Role         string    `gorm:"type:varchar(16);index"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
}

// TableName specifies the database table name for account entities.
func (AccountDTO) TableName() string {
	return "accounts"
}

// fromDomain converts an account to its database representation.
func fromDomain(aggregate *account.Account) AccountDTO {
	return AccountDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Email:        aggregate.Email(),
		Phone:        aggregate.Phone(),
		PasswordHash: aggregate.PasswordHash(),
		Role:         aggregate.Role().String(),
		CreatedAt:    aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an account using RestoreAccount.
func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := account.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(
		id,
		dto.Name,
		dto.Email,
		dto.Phone,
		dto.PasswordHash,
		role,
		dto.CreatedAt,
	)
}
