//go:build !linux && !darwin && !windows

package power

func platformQuery() QueryFunc {
	return unsupportedQuery
}
