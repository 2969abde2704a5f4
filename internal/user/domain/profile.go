package domain

import (
	"time"

	"github.com/platefront/backoffice-backend/pkg/actor"
)

// Profile is the business record for a principal. Exactly one profile exists
// per provider identity; both are created and destroyed together by the
// provisioning workflow, never directly.
type Profile struct {
	IdentityID  string    `json:"identity_id" db:"identity_id"`
	CompanyCode string    `json:"company_code" db:"company_code"`
	Role        string    `json:"role" db:"role"`
	StoreName   *string   `json:"store_name" db:"store_name"`
	Group       *string   `json:"group" db:"user_group"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the profile belongs to a headquarters user.
func (p *Profile) IsAdmin() bool {
	return p.Role == actor.RoleAdmin
}

// Caller converts the profile into the resolved caller context.
func (p *Profile) Caller() *actor.Caller {
	c := &actor.Caller{
		IdentityID:  p.IdentityID,
		CompanyCode: p.CompanyCode,
		Role:        p.Role,
	}
	if p.StoreName != nil {
		c.StoreName = *p.StoreName
	}
	return c
}
