package overlay

import (
	"slices"
	"testing"

	"github.com/bwoverlay/bwoverlay-go/internal/config"
)

// Every key bound besides refresh must be rejected as a refresh key by config
// validation, otherwise the refresh binding would be shadowed.
func TestDefaultKeyMap_ReservedKeys(t *testing.T) {
	km := DefaultKeyMap(`\`)

	var bound []string
	for _, b := range []struct {
		name string
		keys []string
	}{
		{"up", km.Up.Keys()},
		{"down", km.Down.Keys()},
		{"help", km.Help.Keys()},
		{"quit", km.Quit.Keys()},
	} {
		for _, k := range b.keys {
			if !slices.Contains(config.ReservedKeys, k) {
				t.Errorf("%s key %q missing from config.ReservedKeys", b.name, k)
			}
			bound = append(bound, k)
		}
	}

	for _, k := range config.ReservedKeys {
		if !slices.Contains(bound, k) {
			t.Errorf("config.ReservedKeys has %q, which the overlay does not bind", k)
		}
	}
}
