package announce

// Source provides a simplified API for sending announcements from a fixed
// source name.
type Source struct {
	pool *Pool
	name string
}

// Source returns a sending handle bound to the given source name.
func (p *Pool) Source(name string) *Source {
	return &Source{pool: p, name: name}
}

// Name returns the bound source name.
func (s *Source) Name() string {
	return s.name
}

// Send dispatches an announcement from this source to destination Any.
func (s *Source) Send(tag string, value any) error {
	return s.pool.Send(s.name, Any, tag, value)
}

// SendTo dispatches an announcement from this source to a specific
// destination.
func (s *Source) SendTo(destination, tag string, value any) error {
	return s.pool.Send(s.name, destination, tag, value)
}

// Broadcast dispatches an announcement addressed to All, passing every
// subscriber's destination filter.
func (s *Source) Broadcast(tag string, value any) error {
	return s.pool.Send(s.name, All, tag, value)
}
