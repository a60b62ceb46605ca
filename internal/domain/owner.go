package domain

type CustomerID string

type ownerKind uint8

const (
	ownerNone ownerKind = iota
	ownerCustomer
	ownerGuest
)

// OwnerKey identifies the party a hold is recorded under: either a registered
// customer or an anonymous guest token. The zero value is "no owner", which is
// how an anonymous buyer without a token is represented.
type OwnerKey struct {
	kind ownerKind
	id   string
}

func CustomerOwner(id CustomerID) OwnerKey {
	return OwnerKey{kind: ownerCustomer, id: string(id)}
}

func GuestOwner(token string) OwnerKey {
	return OwnerKey{kind: ownerGuest, id: token}
}

func (k OwnerKey) IsZero() bool {
	return k.kind == ownerNone
}

func (k OwnerKey) IsCustomer() bool {
	return k.kind == ownerCustomer
}

func (k OwnerKey) IsGuest() bool {
	return k.kind == ownerGuest
}

// Customer returns the customer id and true when the key belongs to a customer.
func (k OwnerKey) Customer() (CustomerID, bool) {
	if k.kind != ownerCustomer {
		return "", false
	}

	return CustomerID(k.id), true
}

func (k OwnerKey) String() string {
	switch k.kind {
	case ownerCustomer:
		return "customer:" + k.id
	case ownerGuest:
		return "guest:" + k.id
	default:
		return "none"
	}
}
