package rules

import "context"

// Provider supplies the rules bundle and the hard system cap. The cap is
// sourced separately from the bundle and always wins over band-derived
// limits.
type Provider interface {
	Rules(ctx context.Context) (*Snapshot, error)
	Caps(ctx context.Context) (SystemCaps, error)
}

// Static serves a fixed snapshot and cap; used for tests and as the
// last-resort fallback when no external provider is wired.
type Static struct {
	snap *Snapshot
	caps SystemCaps
}

func NewStatic(snap *Snapshot, caps SystemCaps) *Static {
	if snap == nil {
		snap = Defaults()
	}
	return &Static{snap: snap, caps: caps}
}

func (s *Static) Rules(ctx context.Context) (*Snapshot, error) {
	cp := *s.snap
	return &cp, nil
}

func (s *Static) Caps(ctx context.Context) (SystemCaps, error) {
	return s.caps, nil
}
