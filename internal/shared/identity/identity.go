package identity

// Role distinguishes the three kinds of requesters the booking core
// accepts. Identity is always passed explicitly into operations, never
// read from ambient state.
type Role string

const (
	RoleGuest    Role = "GUEST"
	RoleCustomer Role = "CUSTOMER"
	RoleManager  Role = "MANAGER"
)

// Requester is a tagged identity: Guest carries email+name from a form,
// Customer carries the authenticated email, Manager carries the manager
// id number.
type Requester struct {
	Role      Role
	Email     string
	FirstName string
	LastName  string
	ManagerID string
}

func Guest(email, firstName, lastName string) Requester {
	return Requester{Role: RoleGuest, Email: email, FirstName: firstName, LastName: lastName}
}

func Customer(email string) Requester {
	return Requester{Role: RoleCustomer, Email: email}
}

func Manager(id string) Requester {
	return Requester{Role: RoleManager, ManagerID: id}
}

func (r Requester) IsGuest() bool    { return r.Role == RoleGuest }
func (r Requester) IsCustomer() bool { return r.Role == RoleCustomer }
func (r Requester) IsManager() bool  { return r.Role == RoleManager }
