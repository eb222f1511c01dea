// Package selection tracks which record, if any, has its detail view open.
package selection

// Disclosure is a closed/open state scoped to one record id. At most one
// detail view is open: selecting another id while open replaces the id.
// The zero value is closed.
type Disclosure struct {
	id   string
	open bool
}

// FromID returns an open disclosure for id, or a closed one when id is empty.
func FromID(id string) Disclosure {
	var d Disclosure
	if id != "" {
		d.Select(id)
	}
	return d
}

// Select opens the detail view for id. An empty id dismisses.
func (d *Disclosure) Select(id string) {
	if id == "" {
		d.Dismiss()
		return
	}
	d.id = id
	d.open = true
}

// Dismiss closes the detail view.
func (d *Disclosure) Dismiss() {
	d.id = ""
	d.open = false
}

// IsOpen reports whether a detail view is open.
func (d Disclosure) IsOpen() bool { return d.open }

// Selected returns the id the open view is scoped to.
func (d Disclosure) Selected() (string, bool) {
	return d.id, d.open
}

// Is reports whether the view is open on id.
func (d Disclosure) Is(id string) bool {
	return d.open && d.id == id
}
