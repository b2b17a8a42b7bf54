package readout

type batteryReadout struct {
	r resolver
	c BatteryChains
}

func (b *batteryReadout) Percentage() (uint8, error) {
	return resolveField(b.r, FieldBatteryPercentage, b.c.Percentage)
}

func (b *batteryReadout) Status() (BatteryState, error) {
	return resolveField(b.r, FieldBatteryStatus, b.c.Status)
}

func (b *batteryReadout) Health() (uint8, error) {
	return resolveField(b.r, FieldBatteryHealth, b.c.Health)
}

type kernelReadout struct {
	r resolver
	c KernelChains
}

func (k *kernelReadout) OSRelease() (string, error) {
	return resolveField(k.r, FieldOSRelease, k.c.OSRelease)
}

func (k *kernelReadout) OSType() (string, error) {
	return resolveField(k.r, FieldOSType, k.c.OSType)
}

func (k *kernelReadout) PrettyKernel() (string, error) {
	typ, err := k.OSType()
	if err != nil {
		return "", relabel(err, FieldPrettyKernel)
	}

	release, err := k.OSRelease()
	if err != nil {
		return "", relabel(err, FieldPrettyKernel)
	}

	return typ + " " + release, nil
}

type productReadout struct {
	r resolver
	c ProductChains
}

func (p *productReadout) Vendor() (string, error) {
	return resolveField(p.r, FieldProductVendor, p.c.Vendor)
}

func (p *productReadout) Family() (string, error) {
	return resolveField(p.r, FieldProductFamily, p.c.Family)
}

func (p *productReadout) Product() (string, error) {
	return resolveField(p.r, FieldProductName, p.c.Product)
}

type networkReadout struct {
	r resolver
	c NetworkChains
}

func resolveIface[T any](r resolver, field Field, factory func(string) Chain[T], iface string) (T, error) {
	if factory == nil {
		var zero T
		return zero, NotImplemented(field)
	}
	return resolveField(r, field, factory(iface))
}

func (n *networkReadout) TxBytes(iface string) (uint64, error) {
	return resolveIface(n.r, FieldTxBytes, n.c.TxBytes, iface)
}

func (n *networkReadout) TxPackets(iface string) (uint64, error) {
	return resolveIface(n.r, FieldTxPackets, n.c.TxPackets, iface)
}

func (n *networkReadout) RxBytes(iface string) (uint64, error) {
	return resolveIface(n.r, FieldRxBytes, n.c.RxBytes, iface)
}

func (n *networkReadout) RxPackets(iface string) (uint64, error) {
	return resolveIface(n.r, FieldRxPackets, n.c.RxPackets, iface)
}

func (n *networkReadout) LogicalAddress(iface string) (string, error) {
	return resolveIface(n.r, FieldLogicalAddress, n.c.LogicalAddress, iface)
}

func (n *networkReadout) PhysicalAddress(iface string) (string, error) {
	return resolveIface(n.r, FieldPhysicalAddress, n.c.PhysicalAddress, iface)
}

func (n *networkReadout) DefaultGateway() (string, error) {
	return resolveField(n.r, FieldDefaultGateway, n.c.DefaultGateway)
}
