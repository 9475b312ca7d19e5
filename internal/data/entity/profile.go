package entity

type ProfileRole string

const (
	RoleCustomer ProfileRole = "customer"
	RoleStylist  ProfileRole = "stylist"
	RoleAdmin    ProfileRole = "admin"
)

// Profile is owned by the account-management subsystem; this service only
// reads it to resolve recipients and payout destinations.
type Profile struct {
	Base
	FullName        string      `db:"full_name"`
	Email           *string     `db:"email"`
	Phone           *string     `db:"phone"`
	Role            ProfileRole `db:"role"`
	StripeAccountID *string     `db:"stripe_account_id"`
}
