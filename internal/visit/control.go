package fsvisit

// Control is the run-time control surface of a traversal. Every handler
// receives the Visitor's Control, and Execute reads it after each entry.
type Control struct {
	stop bool
	skip bool
}

// Stop asks the traversal to halt. The entry being processed still
// completes, and the halt is recognised before the next entry is handled.
// Execute clears the flag when it starts, so a Stop made before Execute
// has no effect; call it from a handler instead.
func (c *Control) Stop() {
	c.stop = true
}

// Skip excludes the entry being processed from the results, whatever the
// filter decides. The flag clears itself once that entry is done.
func (c *Control) Skip() {
	c.skip = true
}

// Stopping reports whether Stop has been requested.
func (c *Control) Stopping() bool {
	return c.stop
}

// Skipping reports whether the current entry is marked for exclusion.
func (c *Control) Skipping() bool {
	return c.skip
}
