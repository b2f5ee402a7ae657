package tuning

// Provider is the live tuning source.
//
// GetNumber must return def when the key is absent or the source is
// unavailable; it never fails. *dashboard.Table implements Provider.
type Provider interface {
	SetDefaultNumber(key string, value float64) bool
	GetNumber(key string, def float64) float64
}

// Store reads Bounds from a Provider, falling back to compiled defaults.
type Store struct {
	provider Provider
	keys     ChannelKeys
	defaults Bounds
}

// NewStore registers every default with the provider and returns a Store
// that reads the given channel keys.
func NewStore(p Provider, keys ChannelKeys, defaults Bounds) *Store {
	s := &Store{provider: p, keys: keys, defaults: defaults}
	s.registerDefaults()
	return s
}

func (s *Store) registerDefaults() {
	for ch := 0; ch < 3; ch++ {
		s.provider.SetDefaultNumber(s.keys[ch][0], s.defaults.Color.Min[ch])
		s.provider.SetDefaultNumber(s.keys[ch][1], s.defaults.Color.Max[ch])
	}
	a := s.defaults.Accept
	s.provider.SetDefaultNumber(KeyAreaMin, a.AreaMin)
	s.provider.SetDefaultNumber(KeyAreaMax, a.AreaMax)
	s.provider.SetDefaultNumber(KeyAspectMin, a.AspectMin)
	s.provider.SetDefaultNumber(KeyAspectMax, a.AspectMax)
	s.provider.SetDefaultNumber(KeyFullnessMin, a.FullnessMin)
	s.provider.SetDefaultNumber(KeyFullnessMax, a.FullnessMax)
}

// Keys returns the channel keys this store reads.
func (s *Store) Keys() ChannelKeys {
	return s.keys
}

// Defaults returns the compiled defaults.
func (s *Store) Defaults() Bounds {
	return s.defaults
}

// Snapshot reads every bound once, in a tight sequence.
func (s *Store) Snapshot() Bounds {
	var b Bounds
	for ch := 0; ch < 3; ch++ {
		b.Color.Min[ch] = s.provider.GetNumber(s.keys[ch][0], s.defaults.Color.Min[ch])
		b.Color.Max[ch] = s.provider.GetNumber(s.keys[ch][1], s.defaults.Color.Max[ch])
	}
	d := s.defaults.Accept
	b.Accept = AcceptanceBounds{
		AreaMin:     s.provider.GetNumber(KeyAreaMin, d.AreaMin),
		AreaMax:     s.provider.GetNumber(KeyAreaMax, d.AreaMax),
		AspectMin:   s.provider.GetNumber(KeyAspectMin, d.AspectMin),
		AspectMax:   s.provider.GetNumber(KeyAspectMax, d.AspectMax),
		FullnessMin: s.provider.GetNumber(KeyFullnessMin, d.FullnessMin),
		FullnessMax: s.provider.GetNumber(KeyFullnessMax, d.FullnessMax),
	}
	return b
}

// Names lists every key the store reads, color channels first.
func (s *Store) Names() []string {
	names := make([]string, 0, 12)
	for ch := 0; ch < 3; ch++ {
		names = append(names, s.keys[ch][0], s.keys[ch][1])
	}
	return append(names, KeyAreaMin, KeyAreaMax, KeyAspectMin, KeyAspectMax, KeyFullnessMin, KeyFullnessMax)
}
