//go:build linux

package power

func platformQuery() QueryFunc {
	return SysfsQuery(DefaultSysfsRoot)
}
