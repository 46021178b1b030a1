package shared

import "testing"

func TestOpenBrowser(t *testing.T) {
	t.Run("rejects unsupported platforms", func(t *testing.T) {
		orig := getRuntime
		getRuntime = func() string { return "plan9" }
		defer func() { getRuntime = orig }()

		if err := OpenBrowser("https://www.youtube.com/watch?v=abc123"); err == nil {
			t.Error("OpenBrowser() expected error for unsupported platform")
		}
	})
}
