package model

// Domain separates the customer and admin trust domains.
type Domain string

const (
	DomainCustomer Domain = "customer"
	DomainAdmin    Domain = "admin"
)

// Principal is the authenticated caller of a request.
type Principal interface {
	SubjectID() int64
	Role() Role
	Domain() Domain
}

// CustomerPrincipal is a signed-in storefront user.
type CustomerPrincipal struct {
	User User
}

func (p CustomerPrincipal) SubjectID() int64 { return p.User.ID }
func (p CustomerPrincipal) Role() Role       { return p.User.Role }
func (p CustomerPrincipal) Domain() Domain   { return DomainCustomer }

// AdminPrincipal is a signed-in back-office operator.
type AdminPrincipal struct {
	Admin Admin
}

func (p AdminPrincipal) SubjectID() int64 { return p.Admin.ID }
func (p AdminPrincipal) Role() Role       { return RoleAdmin }
func (p AdminPrincipal) Domain() Domain   { return DomainAdmin }

// IsAdmin reports whether p carries the admin role.
func IsAdmin(p Principal) bool {
	return p != nil && p.Role() == RoleAdmin
}

// CanAccess reports whether p may act on a record owned by ownerID.
func CanAccess(p Principal, ownerID int64) bool {
	if p == nil {
		return false
	}
	return IsAdmin(p) || p.SubjectID() == ownerID
}
