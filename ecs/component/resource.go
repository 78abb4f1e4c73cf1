package component

// ResourceMeter is a refilling pool an action can spend from, registered as a
// container module on the entity that owns it.
type ResourceMeter struct {
	Value float64
	Max   float64
	// Regen is the refill rate per second.
	Regen float64
}

// Consume spends amount when enough is left.
func (r *ResourceMeter) Consume(amount float64) bool {
	if r == nil || amount > r.Value {
		return false
	}
	r.Value -= amount
	return true
}

// Tick refills the meter by dt seconds of regeneration.
func (r *ResourceMeter) Tick(dt float64) {
	if r == nil {
		return
	}
	r.Value += r.Regen * dt
	if r.Value > r.Max {
		r.Value = r.Max
	}
}

var ResourceMeterComponent = NewComponent[ResourceMeter]()
