package crop

// Configuration is the crop state of one video: the active mode, the static
// per-mode fields and an ordered keyframe list.
//
// Keyframes are only changed through the mutation methods. Each mutation
// installs a fresh slice, so collections handed out by Keyframes stay valid
// while the configuration is edited.
type Configuration struct {
	Mode             Mode
	Static           State
	PromptPoints     []PromptPoint
	KeyframesEnabled bool

	keyframes []Keyframe
}

// NewConfiguration creates a configuration with the given mode and static state.
func NewConfiguration(mode Mode, static State) *Configuration {
	return &Configuration{Mode: mode, Static: static}
}

// Keyframes returns a copy of the ordered keyframe list.
func (c *Configuration) Keyframes() []Keyframe {
	out := make([]Keyframe, len(c.keyframes))
	copy(out, c.keyframes)
	return out
}

// KeyframeCount returns the number of keyframes.
func (c *Configuration) KeyframeCount() int {
	return len(c.keyframes)
}

// HasActiveKeyframes reports whether playback must come from the interpolation engine.
func (c *Configuration) HasActiveKeyframes() bool {
	return c.KeyframesEnabled && len(c.keyframes) >= 2
}

// SetKeyframe inserts kf, overwriting any keyframe within KeyframeTolerance of its timestamp.
func (c *Configuration) SetKeyframe(kf Keyframe) {
	c.keyframes = upsert(c.keyframes, kf)
}

// UpdateKeyframe applies fn to the keyframe at timestamp. It reports whether one was found.
// Changing the timestamp inside fn re-sorts the collection.
func (c *Configuration) UpdateKeyframe(timestamp float64, fn func(*Keyframe)) bool {
	for i, kf := range c.keyframes {
		if !SameInstant(kf.Timestamp, timestamp) {
			continue
		}
		updated := kf
		fn(&updated)
		rest := make([]Keyframe, 0, len(c.keyframes)-1)
		rest = append(rest, c.keyframes[:i]...)
		rest = append(rest, c.keyframes[i+1:]...)
		c.keyframes = upsert(rest, updated)
		return true
	}
	return false
}

// RemoveKeyframe deletes the keyframe at timestamp. It reports whether one was removed.
func (c *Configuration) RemoveKeyframe(timestamp float64) bool {
	out := make([]Keyframe, 0, len(c.keyframes))
	removed := false
	for _, kf := range c.keyframes {
		if !removed && SameInstant(kf.Timestamp, timestamp) {
			removed = true
			continue
		}
		out = append(out, kf)
	}
	c.keyframes = out
	return removed
}

// ClearKeyframes removes every keyframe.
func (c *Configuration) ClearKeyframes() {
	c.keyframes = nil
}

// Retimed returns a copy of the configuration with every keyframe timestamp mapped through fn.
func (c *Configuration) Retimed(fn func(float64) float64) *Configuration {
	cp := *c
	cp.keyframes = Retime(c.keyframes, fn)
	return &cp
}

// Clamp returns a copy with every geometry field forced into the valid range.
// Clamp is idempotent.
func (c *Configuration) Clamp() *Configuration {
	cp := *c
	cp.Static.Geometry = ClampGeometry(c.Static.Geometry)
	cp.keyframes = make([]Keyframe, len(c.keyframes))
	for i, kf := range c.keyframes {
		kf.Geometry = ClampGeometry(kf.Geometry)
		cp.keyframes[i] = kf
	}
	return &cp
}
