package desktop

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"voice-client/internal/voice"
)

// DesktopInterface is the console menu of the client. It drives the voice
// coordinator; the actual side effects (tracks, gate, session, sinks) are
// its job.
type DesktopInterface struct {
	coordinator *voice.Coordinator
}

func NewDesktopInterface(coordinator *voice.Coordinator) (*DesktopInterface, error) {
	if coordinator == nil {
		return nil, fmt.Errorf("coordinator cant be nil")
	}
	return &DesktopInterface{coordinator: coordinator}, nil
}

func (di *DesktopInterface) StartDesktopInterface(ctx context.Context) {
	menu := "1. Enable voice\n2. Disable voice\n3. Status\n4. Exit"
	println("Desktop Interface Started")
	println("Menu:")
	println(menu)
	reader := bufio.NewReader(os.Stdin)
	for {
		print("Enter choice: ")
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		switch input {
		case "1":
			println("Enabling voice")
			di.coordinator.SetDisabled(ctx, false)
		case "2":
			println("Disabling voice")
			di.coordinator.SetDisabled(ctx, true)
		case "3":
			if di.coordinator.Disabled() {
				println("Voice is disabled")
			} else {
				println("Voice is enabled")
			}
		case "4":
			println("Exiting...")
			return
		default:
			println("Invalid choice, please try again.")
		}
	}
}
