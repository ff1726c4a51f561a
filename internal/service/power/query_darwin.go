//go:build darwin

package power

func platformQuery() QueryFunc {
	return PmsetQuery()
}
