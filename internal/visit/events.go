package fsvisit

// EventHandler handles notifications without a payload.
type EventHandler func(c *Control)

// EntryHandler handles notifications carrying the full path of an entry.
type EntryHandler func(c *Control, path string)

// Observer receives every notification a Visitor fires.
type Observer interface {
	OnStart(c *Control)
	OnFinish(c *Control)
	OnFileFound(c *Control, path string)
	OnDirectoryFound(c *Control, path string)
	OnFilteredFileFound(c *Control, path string)
	OnFilteredDirectoryFound(c *Control, path string)
}

// NopObserver implements Observer with empty methods. Embed it to
// implement only the notifications of interest.
type NopObserver struct{}

func (NopObserver) OnStart(*Control)                          {}
func (NopObserver) OnFinish(*Control)                         {}
func (NopObserver) OnFileFound(*Control, string)              {}
func (NopObserver) OnDirectoryFound(*Control, string)         {}
func (NopObserver) OnFilteredFileFound(*Control, string)      {}
func (NopObserver) OnFilteredDirectoryFound(*Control, string) {}

// handlers holds subscribers per event kind, in registration order.
type handlers struct {
	start, finish             []EventHandler
	file, dir                 []EntryHandler
	filteredFile, filteredDir []EntryHandler
}

func fire(hs []EventHandler, c *Control) {
	for _, h := range hs {
		h(c)
	}
}

func fireEntry(hs []EntryHandler, c *Control, path string) {
	for _, h := range hs {
		h(c, path)
	}
}

// OnStart subscribes h to the notification fired before the first entry.
func (v *Visitor) OnStart(h EventHandler) {
	v.handlers.start = append(v.handlers.start, h)
}

// OnFinish subscribes h to the notification fired when a traversal ends
// without error, including after an early stop.
func (v *Visitor) OnFinish(h EventHandler) {
	v.handlers.finish = append(v.handlers.finish, h)
}

// OnFileFound subscribes h to files found while no filter is configured.
func (v *Visitor) OnFileFound(h EntryHandler) {
	v.handlers.file = append(v.handlers.file, h)
}

// OnDirectoryFound subscribes h to directories found while no filter is configured.
func (v *Visitor) OnDirectoryFound(h EntryHandler) {
	v.handlers.dir = append(v.handlers.dir, h)
}

// OnFilteredFileFound subscribes h to files found while a filter is
// configured. It fires before the filter runs, whatever its outcome.
func (v *Visitor) OnFilteredFileFound(h EntryHandler) {
	v.handlers.filteredFile = append(v.handlers.filteredFile, h)
}

// OnFilteredDirectoryFound subscribes h to directories found while a filter
// is configured. It fires before the filter runs, whatever its outcome.
func (v *Visitor) OnFilteredDirectoryFound(h EntryHandler) {
	v.handlers.filteredDir = append(v.handlers.filteredDir, h)
}

// Observe subscribes every method of o.
func (v *Visitor) Observe(o Observer) {
	v.OnStart(o.OnStart)
	v.OnFinish(o.OnFinish)
	v.OnFileFound(o.OnFileFound)
	v.OnDirectoryFound(o.OnDirectoryFound)
	v.OnFilteredFileFound(o.OnFilteredFileFound)
	v.OnFilteredDirectoryFound(o.OnFilteredDirectoryFound)
}
