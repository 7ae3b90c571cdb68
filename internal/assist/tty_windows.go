//go:build windows

package assist

// CheckTTY is a no-op on Windows; the Bubble Tea runtime handles console
// capability detection itself.
func CheckTTY() error {
	return nil
}
