package readout

// Category groups fields by capability interface.
type Category string

const (
	CategoryGeneral Category = "general"
	CategoryMemory  Category = "memory"
	CategoryBattery Category = "battery"
	CategoryKernel  Category = "kernel"
	CategoryProduct Category = "product"
	CategoryNetwork Category = "network"
	CategoryPackage Category = "package"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryMemory,
		CategoryBattery,
		CategoryKernel,
		CategoryProduct,
		CategoryNetwork,
		CategoryPackage,
	}
}

// Field identifies one logical piece of information.
type Field struct {
	Category Category
	Name     string
}

func (f Field) String() string {
	if f.IsZero() {
		return ""
	}
	return string(f.Category) + "." + f.Name
}

func (f Field) IsZero() bool { return f.Category == "" && f.Name == "" }

var (
	FieldUsername           = Field{CategoryGeneral, "username"}
	FieldHostname           = Field{CategoryGeneral, "hostname"}
	FieldDistribution       = Field{CategoryGeneral, "distribution"}
	FieldDesktopEnvironment = Field{CategoryGeneral, "desktop_environment"}
	FieldSession            = Field{CategoryGeneral, "session"}
	FieldWindowManager      = Field{CategoryGeneral, "window_manager"}
	FieldResolution         = Field{CategoryGeneral, "resolution"}
	FieldGPUs               = Field{CategoryGeneral, "gpus"}
	FieldTerminal           = Field{CategoryGeneral, "terminal"}
	FieldShell              = Field{CategoryGeneral, "shell"}
	FieldCPUModelName       = Field{CategoryGeneral, "cpu_model_name"}
	FieldCPUUsage           = Field{CategoryGeneral, "cpu_usage"}
	FieldCPUTimes           = Field{CategoryGeneral, "cpu_times"}
	FieldCPUPhysicalCores   = Field{CategoryGeneral, "cpu_physical_cores"}
	FieldCPUCores           = Field{CategoryGeneral, "cpu_cores"}
	FieldUptime             = Field{CategoryGeneral, "uptime"}
	FieldMachine            = Field{CategoryGeneral, "machine"}
	FieldOSName             = Field{CategoryGeneral, "os_name"}
	FieldMachineID          = Field{CategoryGeneral, "machine_id"}
	FieldDiskSpace          = Field{CategoryGeneral, "disk_space"}
	FieldBacklight          = Field{CategoryGeneral, "backlight"}

	FieldMemoryTotal       = Field{CategoryMemory, "total"}
	FieldMemoryFree        = Field{CategoryMemory, "free"}
	FieldMemoryAvailable   = Field{CategoryMemory, "available"}
	FieldMemoryBuffers     = Field{CategoryMemory, "buffers"}
	FieldMemoryCached      = Field{CategoryMemory, "cached"}
	FieldMemoryReclaimable = Field{CategoryMemory, "reclaimable"}
	FieldMemoryUsed        = Field{CategoryMemory, "used"}
	FieldSwapTotal         = Field{CategoryMemory, "swap_total"}
	FieldSwapFree          = Field{CategoryMemory, "swap_free"}
	FieldSwapUsed          = Field{CategoryMemory, "swap_used"}

	FieldBatteryPercentage = Field{CategoryBattery, "percentage"}
	FieldBatteryStatus     = Field{CategoryBattery, "status"}
	FieldBatteryHealth     = Field{CategoryBattery, "health"}

	FieldOSRelease    = Field{CategoryKernel, "os_release"}
	FieldOSType       = Field{CategoryKernel, "os_type"}
	FieldPrettyKernel = Field{CategoryKernel, "pretty_kernel"}

	FieldProductVendor = Field{CategoryProduct, "vendor"}
	FieldProductFamily = Field{CategoryProduct, "family"}
	FieldProductName   = Field{CategoryProduct, "product"}

	FieldTxBytes         = Field{CategoryNetwork, "tx_bytes"}
	FieldTxPackets       = Field{CategoryNetwork, "tx_packets"}
	FieldRxBytes         = Field{CategoryNetwork, "rx_bytes"}
	FieldRxPackets       = Field{CategoryNetwork, "rx_packets"}
	FieldLogicalAddress  = Field{CategoryNetwork, "logical_address"}
	FieldPhysicalAddress = Field{CategoryNetwork, "physical_address"}
	FieldDefaultGateway  = Field{CategoryNetwork, "default_gateway"}

	FieldPackageCount = Field{CategoryPackage, "count"}
)

var allFields = []Field{
	FieldUsername, FieldHostname, FieldDistribution, FieldDesktopEnvironment,
	FieldSession, FieldWindowManager, FieldResolution, FieldGPUs,
	FieldTerminal, FieldShell, FieldCPUModelName, FieldCPUUsage,
	FieldCPUPhysicalCores, FieldCPUCores, FieldUptime, FieldMachine,
	FieldOSName, FieldMachineID, FieldDiskSpace, FieldBacklight,

	FieldMemoryTotal, FieldMemoryFree, FieldMemoryAvailable, FieldMemoryBuffers,
	FieldMemoryCached, FieldMemoryReclaimable, FieldMemoryUsed,
	FieldSwapTotal, FieldSwapFree, FieldSwapUsed,

	FieldBatteryPercentage, FieldBatteryStatus, FieldBatteryHealth,

	FieldOSRelease, FieldOSType, FieldPrettyKernel,

	FieldProductVendor, FieldProductFamily, FieldProductName,

	FieldTxBytes, FieldTxPackets, FieldRxBytes, FieldRxPackets,
	FieldLogicalAddress, FieldPhysicalAddress, FieldDefaultGateway,

	FieldPackageCount,
}

// Fields returns every public field in display order.
func Fields() []Field {
	out := make([]Field, len(allFields))
	copy(out, allFields)
	return out
}

// LookupField finds a field by its "category.name" string.
func LookupField(s string) (Field, bool) {
	for _, f := range allFields {
		if f.String() == s {
			return f, true
		}
	}
	return Field{}, false
}
