package lobby_test

import (
	"fmt"

	"github.com/bwoverlay/bwoverlay-go/pkg/lobby"
)

func ExampleDetect() {
	lines := []string{
		"[18:02:11] [Client thread/INFO]: [CHAT] Old1, Old2, Old3",
		"[18:04:40] [Client thread/INFO]: [CHAT] Alice, Bob , Carol",
		"[18:04:41] [Client thread/INFO]: [CHAT] BedWars ? Team Red, Blue, Green",
	}

	roster := lobby.Detect(lines)
	for _, name := range roster.Names {
		fmt.Println(lobby.SanitizeName(name))
	}
	// Output:
	// Alice
	// Bob
	// Carol
}

func ExampleSanitizeName() {
	fmt.Println(lobby.SanitizeName("  Bob the Builder, "))
	// Output: Bob
}
