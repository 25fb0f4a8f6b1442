package pipeline

import (
	"sync"
	"testing"
)

func TestForwardToTapDeliversAndDrops(t *testing.T) {
	p := &AudioPipeline{}
	p.forwardToTap([]int16{1}) // no tap installed, must not block

	tap := make(chan []int16, 1)
	p.SetTap(tap)

	p.forwardToTap([]int16{1, 2})
	p.forwardToTap([]int16{3, 4}) // tap full, frame dropped

	select {
	case frame := <-tap:
		if len(frame) != 2 || frame[0] != 1 {
			t.Errorf("wrong frame delivered: %v", frame)
		}
	default:
		t.Fatal("no frame delivered to tap")
	}
	select {
	case frame := <-tap:
		t.Fatalf("overflow frame was not dropped: %v", frame)
	default:
	}
}

// The web bridge installs the tap while the receive loop may already be
// forwarding frames, so the two must not race.
func TestSetTapWhileForwarding(t *testing.T) {
	p := &AudioPipeline{}
	frame := []int16{0}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			p.forwardToTap(frame)
		}
	}()
	for i := 0; i < 1000; i++ {
		p.SetTap(make(chan []int16, 1))
	}
	wg.Wait()
}
