//go:build windows

package power

import (
	"context"
	"fmt"

	"github.com/yusufpapurcu/wmi"
)

func platformQuery() QueryFunc {
	return wmiQuery
}

// wmiQuery reads Win32_Battery. Desktops and servers usually return no rows.
func wmiQuery(context.Context) (Status, error) {
	var dst []win32Battery
	if err := wmi.Query("SELECT EstimatedChargeRemaining, BatteryStatus FROM Win32_Battery", &dst); err != nil {
		return Status{}, fmt.Errorf("query Win32_Battery: %w", err)
	}

	return statusFromWMI(dst)
}
