// Package store owns the category and task state for one user and
// mirrors it to a persistence backend after every mutation.
package store

// Backend durably stores the serialized task snapshot. The store only
// ever writes the whole snapshot; backends never see deltas.
//
// Load returns ok=false when no snapshot has been saved yet, which the
// store treats as an empty first run rather than an error.
type Backend interface {
	Load() (data []byte, ok bool, err error)
	Save(data []byte) error
}
