// Package models defines the core domain models for Stockroom.
//
// # Collections
//
// The system tracks three independent collections:
//   - Item: a named category of physical inventory, owning its trackable units
//   - Bill: a purchase record that units can be tagged with
//   - User: a person that units can be assigned to
//
// # Relationships
//
// An Item exclusively owns its SubItems (embedded, never shared between
// items). Bills and Users are owned independently and referenced from
// SubItems by bill number and person ID. These references are maintained
// by the service layer, not enforced by the storage schema: a sub-item may
// transiently point at a bill number before the bill record exists.
//
// An Assignment denormalizes the user's contact details at allotment time.
// It is resynchronized with the canonical User record only by the explicit
// user-update propagation in the service layer.
//
// # Design Principles
//
//  1. Optional fields are pointers or omitempty strings so that absent
//     values round-trip as absent rather than as empty markers.
//  2. Relationships use ID strings instead of object pointers to avoid
//     circular references.
//  3. Wire shapes (JSON tags) match the persisted legacy layout, so the
//     same structs decode the pre-split single-document blob.
package models
