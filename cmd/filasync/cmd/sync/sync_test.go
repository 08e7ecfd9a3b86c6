package sync

import "testing"

// Sync runs every stage and composes all flag groups.
func TestSyncCommandFlags(t *testing.T) {
	cmd := NewCommand()

	for _, name := range []string{"input", "profiles", "output", "force", "printer", "printers", "no-backup"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("sync should register --%s", name)
		}
	}
}
