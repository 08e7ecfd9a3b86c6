package expand

import "testing"

// Expand never talks to a printer, so it must not advertise printer or
// delivery flags.
func TestExpandCommandFlags(t *testing.T) {
	cmd := NewCommand()

	for _, name := range []string{"input", "profiles", "output", "force"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expand should register --%s", name)
		}
	}
	for _, name := range []string{"printer", "printers", "no-backup"} {
		if cmd.Flags().Lookup(name) != nil {
			t.Errorf("expand should not register --%s", name)
		}
	}
}
