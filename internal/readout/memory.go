package readout

type memoryReadout struct {
	r resolver
	c MemoryChains
}

func (m *memoryReadout) Total() (uint64, error) {
	return resolveField(m.r, FieldMemoryTotal, m.c.Total)
}

func (m *memoryReadout) Free() (uint64, error) {
	return resolveField(m.r, FieldMemoryFree, m.c.Free)
}

func (m *memoryReadout) Available() (uint64, error) {
	return resolveField(m.r, FieldMemoryAvailable, m.c.Available)
}

func (m *memoryReadout) Buffers() (uint64, error) {
	return resolveField(m.r, FieldMemoryBuffers, m.c.Buffers)
}

func (m *memoryReadout) Cached() (uint64, error) {
	return resolveField(m.r, FieldMemoryCached, m.c.Cached)
}

func (m *memoryReadout) Reclaimable() (uint64, error) {
	return resolveField(m.r, FieldMemoryReclaimable, m.c.Reclaimable)
}

func (m *memoryReadout) Used() (uint64, error) {
	return difference(FieldMemoryUsed, m.Total, m.Available)
}

func (m *memoryReadout) SwapTotal() (uint64, error) {
	return resolveField(m.r, FieldSwapTotal, m.c.SwapTotal)
}

func (m *memoryReadout) SwapFree() (uint64, error) {
	return resolveField(m.r, FieldSwapFree, m.c.SwapFree)
}

func (m *memoryReadout) SwapUsed() (uint64, error) {
	return difference(FieldSwapUsed, m.SwapTotal, m.SwapFree)
}

// difference returns whole - part, failing instead of wrapping around.
func difference(field Field, whole, part func() (uint64, error)) (uint64, error) {
	w, err := whole()
	if err != nil {
		return 0, relabel(err, field)
	}

	p, err := part()
	if err != nil {
		return 0, relabel(err, field)
	}

	if p > w {
		e := Unavailablef("%d exceeds total %d", p, w)
		e.Field = field
		return 0, e
	}

	return w - p, nil
}
