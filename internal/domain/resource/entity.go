package resource

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind     = errors.New("invalid resource kind")
	ErrInvalidCapacity = errors.New("capacity must be positive")
	ErrEmptyName       = errors.New("resource name cannot be empty")
)

// Kind is the category of bookable resource. Reservations never mix kinds.
type Kind string

const (
	KindField    Kind = "FIELD"
	KindTableRow Kind = "TABLE_ROW"
)

func NewKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindField, KindTableRow:
		return true
	default:
		return false
	}
}

// Resource is a bookable unit of the venue. The engine treats it as
// immutable; the catalog is managed elsewhere.
type Resource struct {
	id       uuid.UUID
	kind     Kind
	name     string
	capacity int
}

func NewResource(id uuid.UUID, kind Kind, name string, capacity int) (*Resource, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Resource{
		id:       id,
		kind:     kind,
		name:     name,
		capacity: capacity,
	}, nil
}

func (r *Resource) ID() uuid.UUID { return r.id }
func (r *Resource) Kind() Kind    { return r.kind }
func (r *Resource) Name() string  { return r.name }
func (r *Resource) Capacity() int { return r.capacity }
