package power

// win32Battery is the subset of the Win32_Battery WMI class the reader needs.
// Field names must match the WMI property names.
type win32Battery struct {
	EstimatedChargeRemaining uint16
	BatteryStatus            uint16
}

// Win32_Battery.BatteryStatus values reported while external power is connected:
// 2=AC, 3=Fully Charged, 6=Charging, 7=Charging and High, 8=Charging and Low,
// 9=Charging and Critical, 11=Partially Charged.
var wmiPluggedStatuses = map[uint16]struct{}{
	2: {}, 3: {}, 6: {}, 7: {}, 8: {}, 9: {}, 11: {},
}

func statusFromWMI(rows []win32Battery) (Status, error) {
	if len(rows) == 0 {
		return Status{}, ErrNoBattery
	}

	var (
		sum     int
		plugged bool
	)

	for _, row := range rows {
		sum += int(row.EstimatedChargeRemaining)

		if _, ok := wmiPluggedStatuses[row.BatteryStatus]; ok {
			plugged = true
		}
	}

	return Status{
		Percent: (sum + len(rows)/2) / len(rows),
		Plugged: plugged,
	}, nil
}
