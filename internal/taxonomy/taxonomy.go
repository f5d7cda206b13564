// Package taxonomy handles the cascading profession → department → role
// selection and the cached queries that feed it.
package taxonomy

import (
	"encoding/json"
	"errors"
)

// ID identifies a profession, department or role. Zero means unset.
type ID int64

// Option is one selectable taxonomy entry.
type Option struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// IsSet reports whether o refers to a real entry.
func (o Option) IsSet() bool {
	return o.ID != 0
}

// Key is a full role selection as sent to generation endpoints.
type Key struct {
	Profession Option
	Department Option
	Role       Option
}

// Complete reports whether all three levels are chosen.
func (k Key) Complete() bool {
	return k.Profession.IsSet() && k.Department.IsSet() && k.Role.IsSet()
}

// MarshalJSON writes the id-only wire shape {"profession":1,"department":2,"role":3}.
func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Profession ID `json:"profession"`
		Department ID `json:"department"`
		Role       ID `json:"role"`
	}{k.Profession.ID, k.Department.ID, k.Role.ID})
}

// ErrParentUnset is returned by dependent queries whose parent id is zero.
var ErrParentUnset = errors.New("parent selection is not set")
